package app

import "lebdeal/internal/domain"

// EventKind identifies emitted domain events for runtime dispatch.
type EventKind string

const (
	EventTableStateChanged EventKind = "table_state_changed"
	EventHandDealt         EventKind = "hand_dealt"
	EventAutoPassArmed     EventKind = "auto_pass_armed"
	EventMatchEnded        EventKind = "match_ended"
	EventGameEnded         EventKind = "game_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// PublicTable is the broadcastable view of a table: hands are reduced to
// counts so nothing private leaves the server.
type PublicTable struct {
	Phase      domain.Phase        `json:"phase"`
	Counts     []int               `json:"counts"`
	LastCombo  *domain.Combo       `json:"last_combo,omitempty"`
	LastSeat   int                 `json:"last_seat"`
	ActingSeat int                 `json:"acting_seat"`
	Match      int                 `json:"match"`
	Scores     domain.ScoreSheet   `json:"scores"`
	History    []domain.PlayRecord `json:"history,omitempty"`
}

// RedactTable projects a snapshot into its public view.
func RedactTable(table domain.TableState) PublicTable {
	counts := make([]int, table.Seats)
	for seat := range counts {
		counts[seat] = table.RemainingCards(seat)
	}
	pub := PublicTable{
		Phase:      table.Phase,
		Counts:     counts,
		LastSeat:   table.LastSeat,
		ActingSeat: table.ActingSeat,
		Match:      table.Match,
		Scores:     table.Scores,
		History:    table.History,
	}
	if table.LastCombo != nil {
		combo := *table.LastCombo
		pub.LastCombo = &combo
	}
	return pub
}

type TableStateChangedPayload struct {
	Table PublicTable `json:"table"`
}

type HandDealtPayload struct {
	Seat int           `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type AutoPassArmedPayload struct {
	Seat            int `json:"seat"`             // owner of the unbeatable combo
	CountdownMillis int `json:"countdown_millis"` // until the remaining seats are auto-passed
}

type MatchEndedPayload struct {
	Match  int               `json:"match"`
	Winner int               `json:"winner"`
	Deltas []int32           `json:"deltas"`
	Scores domain.ScoreSheet `json:"scores"`
}

type GameEndedPayload struct {
	Winner int               `json:"winner"`
	Scores domain.ScoreSheet `json:"scores"`
}
