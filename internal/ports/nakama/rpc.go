package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"lebdeal/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RejoinTokenRequest asks for a signed token binding the caller to a seat.
type RejoinTokenRequest struct {
	MatchID string `json:"match_id"`
	Seat    int    `json:"seat"`
}

// RejoinTokenResponse carries the minted token.
type RejoinTokenResponse struct {
	Token string `json:"token"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcRejoinToken, rpcRejoinToken)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	// Find any open lobby for our game.
	query := "+label.open:>=1 label.game:deal label.state:lobby"

	limit := 10
	authoritative := true

	minSize := 1
	maxSize := 3 // ensure < 4 players

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("MatchList error: %v", err)
		return "", err
	}

	if len(matches) > 0 {
		resp := QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		return string(b), nil
	}

	// Create new match; seat/owner assignment happens in MatchJoin (server-authoritative).
	matchID, err := nk.MatchCreate(ctx, MatchNameDeal, map[string]interface{}{})
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", err
	}

	resp := QuickMatchResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	return string(b), nil
}

// rpcRejoinToken mints a signed token the caller can present in its join
// metadata to reclaim a seat after a disconnect.
func rpcRejoinToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errors.New("no user in context")
	}

	var req RejoinTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", errors.New("malformed rejoin token request")
	}
	if req.MatchID == "" || req.Seat < 0 || req.Seat > 3 {
		return "", errors.New("invalid match or seat")
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["deal_rejoin_secret"]
	if secret == "" {
		return "", errors.New("rejoin tokens are not configured")
	}

	tokens := app.NewRejoinTokenService(secret, rejoinIssuer, 0)
	token, err := tokens.GenerateToken(userID, req.MatchID, req.Seat)
	if err != nil {
		logger.Error("rpcRejoinToken: Failed to sign token for %s: %v", userID, err)
		return "", err
	}

	b, _ := json.Marshal(RejoinTokenResponse{Token: token})
	return string(b), nil
}
