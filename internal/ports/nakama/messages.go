package nakama

import "lebdeal/internal/domain"

// MatchLabel is the JSON label indexed by Nakama's match listing.
type MatchLabel struct {
	Open  int    `json:"open"`
	State string `json:"state"`
	Game  string `json:"game"`
}

// PlayCardsRequest is the client payload for OpPlayCards.
type PlayCardsRequest struct {
	Cards []domain.Card `json:"cards"`
}

// PlayerInfo describes one occupied seat in a lobby snapshot.
type PlayerInfo struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	DisplayName    string `json:"display_name"`
	CardsRemaining int    `json:"cards_remaining"`
}

// LobbyStateEvent is broadcast whenever seating changes.
type LobbyStateEvent struct {
	Seats     []string     `json:"seats"`
	OwnerSeat int          `json:"owner_seat"`
	Tick      int64        `json:"tick"`
	Players   []PlayerInfo `json:"players"`
}

// GameErrorEvent is sent to a single presence when its request is refused.
type GameErrorEvent struct {
	Code         int          `json:"code"`
	Message      string       `json:"message"`
	Reason       string       `json:"reason,omitempty"`
	RequiredCard *domain.Card `json:"required_card,omitempty"`
}
