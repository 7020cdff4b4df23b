// Package httpd exposes the rule engine as a stateless validator: every
// request loads the persisted snapshot, runs the pure engine, and stores the
// successor under an optimistic version. The engine code is exactly the one
// the offline simulator runs; only the sourcing of TableState differs.
package httpd

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lebdeal/internal/app"
	"lebdeal/internal/domain"
	"lebdeal/internal/ports"
)

type Server struct {
	svc    *app.Service
	store  ports.TableStore
	pub    ports.Publisher
	tokens *app.RejoinTokenService
}

func NewServer(svc *app.Service, store ports.TableStore, pub ports.Publisher, tokens *app.RejoinTokenService) *Server {
	return &Server{svc: svc, store: store, pub: pub, tokens: tokens}
}

// Router wires the validator endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Post("/tables", s.handleCreateTable)
	r.Get("/tables/{id}", s.handleGetTable)
	r.Post("/tables/{id}/actions", s.handleSubmitAction)
	r.Post("/tables/{id}/rejoin-tokens", s.handleIssueRejoinToken)
	r.Post("/rejoin", s.handleVerifyRejoinToken)
	return r
}

type createTableRequest struct {
	Seats int      `json:"seats"`
	Users []string `json:"users,omitempty"`
}

type tableResponse struct {
	TableID string          `json:"table_id"`
	Version int64           `json:"version"`
	Table   app.PublicTable `json:"table"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.Seats == 0 {
		req.Seats = 4
	}

	table, events, err := s.svc.StartGame(req.Seats, req.Users)
	if err != nil {
		if errors.Is(err, app.ErrTooFewSeats) || errors.Is(err, app.ErrUnevenSeats) {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		s.internalError(w, r, err)
		return
	}

	tableID := uuid.NewString()
	if err := s.store.Create(r.Context(), tableID, table); err != nil {
		s.internalError(w, r, err)
		return
	}
	s.publish(r, tableID, events)

	writeJSON(w, http.StatusCreated, tableResponse{
		TableID: tableID,
		Version: 1,
		Table:   app.RedactTable(table),
	})
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "id")
	vt, err := s.store.Load(r.Context(), tableID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "unknown table")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tableResponse{
		TableID: tableID,
		Version: vt.Version,
		Table:   app.RedactTable(vt.Table),
	})
}

type actionRequest struct {
	Actor   int           `json:"actor"`
	Pass    bool          `json:"pass"`
	Cards   []domain.Card `json:"cards,omitempty"`
	Version int64         `json:"version"`
}

type rejectionResponse struct {
	Reason       domain.Reason `json:"reason"`
	RequiredCard *domain.Card  `json:"required_card,omitempty"`
}

// handleSubmitAction is the authoritative submit path: load, validate, store
// under the version the client acted on. A losing concurrent submission
// observes a stale-state rejection and retries after re-reading.
func (s *Server) handleSubmitAction(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "id")

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	vt, err := s.store.Load(r.Context(), tableID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "unknown table")
			return
		}
		s.internalError(w, r, err)
		return
	}
	if req.Version != 0 && req.Version != vt.Version {
		writeRejection(w, http.StatusConflict, &domain.Rejection{Reason: domain.ReasonStaleState})
		return
	}

	action := domain.Action{Pass: req.Pass, Cards: req.Cards}
	next, events, rej, err := s.svc.Submit(vt.Table, req.Actor, action, nil)
	if err != nil {
		// Integrity violations are fatal for the match; abandon, never patch.
		if errors.Is(err, domain.ErrMalformedHandState) {
			log.Printf("table %s: %v", tableID, err)
			writeError(w, http.StatusInternalServerError, "malformed_hand_state", err.Error())
			return
		}
		s.internalError(w, r, err)
		return
	}
	if rej != nil {
		writeRejection(w, http.StatusUnprocessableEntity, rej)
		return
	}

	version, err := s.store.Store(r.Context(), tableID, next, vt.Version)
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			writeRejection(w, http.StatusConflict, &domain.Rejection{Reason: domain.ReasonStaleState})
			return
		}
		s.internalError(w, r, err)
		return
	}
	s.publish(r, tableID, events)

	writeJSON(w, http.StatusOK, tableResponse{
		TableID: tableID,
		Version: version,
		Table:   app.RedactTable(next),
	})
}

type rejoinTokenRequest struct {
	UserID string `json:"user_id"`
	Seat   int    `json:"seat"`
}

func (s *Server) handleIssueRejoinToken(w http.ResponseWriter, r *http.Request) {
	if s.tokens == nil {
		writeError(w, http.StatusNotImplemented, "not_configured", "rejoin tokens are not configured")
		return
	}
	tableID := chi.URLParam(r, "id")

	var req rejoinTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if _, err := s.store.Load(r.Context(), tableID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "unknown table")
			return
		}
		s.internalError(w, r, err)
		return
	}

	token, err := s.tokens.GenerateToken(req.UserID, tableID, req.Seat)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleVerifyRejoinToken(w http.ResponseWriter, r *http.Request) {
	if s.tokens == nil {
		writeError(w, http.StatusNotImplemented, "not_configured", "rejoin tokens are not configured")
		return
	}
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	claims, err := s.tokens.VerifyToken(req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":  claims.UserID,
		"table_id": claims.TableID,
		"seat":     claims.Seat,
	})
}

func (s *Server) publish(r *http.Request, tableID string, events []app.Event) {
	if s.pub == nil || len(events) == 0 {
		return
	}
	if err := s.pub.Publish(r.Context(), tableID, events); err != nil {
		log.Printf("table %s: publish: %v", tableID, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}

func writeRejection(w http.ResponseWriter, status int, rej *domain.Rejection) {
	writeJSON(w, status, rejectionResponse{Reason: rej.Reason, RequiredCard: rej.RequiredCard})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
