package domain

import (
	"errors"
	"fmt"
)

// Phase is the lifecycle stage of a table.
type Phase string

const (
	// PhaseAwaitingOpen waits for the holder of the opening card to lead.
	PhaseAwaitingOpen Phase = "awaiting_open"
	// PhaseInProgress is active play within a match.
	PhaseInProgress Phase = "in_progress"
	// PhaseMatchFinished is the transient state between a hand emptying and
	// either the next deal or the end of the game.
	PhaseMatchFinished Phase = "match_finished"
	// PhaseGameFinished is terminal: a seat crossed the score limit.
	PhaseGameFinished Phase = "game_finished"
)

// ErrMalformedHandState flags a deck-partition violation: the union of all
// hands and the played history no longer equals the 52-card deck. It is not
// locally recoverable; the match must be abandoned rather than patched.
var ErrMalformedHandState = errors.New("malformed hand state")

// PlayRecord is one accepted play in the current match.
type PlayRecord struct {
	Seat  int   `json:"seat"`
	Combo Combo `json:"combo"`
}

// ScoreSheet accumulates penalty points per seat across the matches of one
// game session.
type ScoreSheet struct {
	Totals []int32   `json:"totals"`
	Deltas [][]int32 `json:"deltas"` // per seat, one delta per finished match
}

// NewScoreSheet returns an empty sheet for the given seat count.
func NewScoreSheet(seats int) ScoreSheet {
	return ScoreSheet{
		Totals: make([]int32, seats),
		Deltas: make([][]int32, seats),
	}
}

func (s ScoreSheet) clone() ScoreSheet {
	out := ScoreSheet{
		Totals: append([]int32{}, s.Totals...),
		Deltas: make([][]int32, len(s.Deltas)),
	}
	for i, d := range s.Deltas {
		out.Deltas[i] = append([]int32{}, d...)
	}
	return out
}

// TableState is the complete authoritative state of one table. It is treated
// as an immutable snapshot: Validate and the lifecycle functions never mutate
// a state in place, they return a successor, which is what lets the same
// engine run inside the offline loop and the stateless networked validator.
type TableState struct {
	Seats      int          `json:"seats"`
	Phase      Phase        `json:"phase"`
	Hands      [][]Card     `json:"hands"`
	LastCombo  *Combo       `json:"last_combo,omitempty"`
	LastSeat   int          `json:"last_seat"` // -1 when no combo stands
	ActingSeat int          `json:"acting_seat"`
	History    []PlayRecord `json:"history"`
	Match      int          `json:"match"` // 0-based match number in this game
	Scores     ScoreSheet   `json:"scores"`
}

// NewTable starts the first match of a game from externally dealt hands.
// The seat holding the opening card acts first.
func NewTable(hands [][]Card) (TableState, error) {
	t := TableState{
		Seats:    len(hands),
		Phase:    PhaseAwaitingOpen,
		Hands:    cloneHands(hands),
		LastSeat: -1,
		Scores:   NewScoreSheet(len(hands)),
	}
	if _, ok := successors[t.Seats]; !ok {
		return TableState{}, fmt.Errorf("unsupported table size %d", t.Seats)
	}
	for _, h := range t.Hands {
		SortCards(h)
	}
	if err := t.CheckIntegrity(); err != nil {
		return TableState{}, err
	}
	t.ActingSeat = openerSeat(t.Hands)
	return t, nil
}

// Clone deep-copies the state so a successor can be derived without touching
// the snapshot a concurrent reader may still hold.
func (t TableState) Clone() TableState {
	out := t
	out.Hands = cloneHands(t.Hands)
	out.History = append([]PlayRecord{}, t.History...)
	out.Scores = t.Scores.clone()
	if t.LastCombo != nil {
		combo := *t.LastCombo
		combo.Cards = append([]Card{}, t.LastCombo.Cards...)
		out.LastCombo = &combo
	}
	return out
}

// RemainingCards returns the card count still held by the seat.
func (t TableState) RemainingCards(seat int) int {
	return len(t.Hands[seat])
}

// MatchWinner returns the seat whose hand is empty, or -1 while the match is
// still running.
func (t TableState) MatchWinner() int {
	for seat, h := range t.Hands {
		if len(h) == 0 {
			return seat
		}
	}
	return -1
}

// PlayedCards returns every card in the current match's history.
func (t TableState) PlayedCards() []Card {
	var out []Card
	for _, rec := range t.History {
		out = append(out, rec.Combo.Cards...)
	}
	return out
}

// CheckIntegrity verifies the deck-partition invariant: the multiset union of
// all hands and the played history is exactly the 52-card deck. Any other
// distribution means a card was conjured or destroyed and the match cannot
// continue.
func (t TableState) CheckIntegrity() error {
	seen := make(map[Card]int, DeckSize)
	total := 0
	count := func(c Card, where string) error {
		seen[c]++
		total++
		if seen[c] > 1 {
			return fmt.Errorf("%w: card %s duplicated in %s", ErrMalformedHandState, c, where)
		}
		return nil
	}
	for seat, hand := range t.Hands {
		for _, c := range hand {
			if err := count(c, fmt.Sprintf("seat %d hand", seat)); err != nil {
				return err
			}
		}
	}
	for _, rec := range t.History {
		for _, c := range rec.Combo.Cards {
			if err := count(c, "played history"); err != nil {
				return err
			}
		}
	}
	if total != DeckSize {
		return fmt.Errorf("%w: %d cards in play, want %d", ErrMalformedHandState, total, DeckSize)
	}
	return nil
}

func cloneHands(hands [][]Card) [][]Card {
	out := make([][]Card, len(hands))
	for i, h := range hands {
		out[i] = append([]Card{}, h...)
	}
	return out
}

func openerSeat(hands [][]Card) int {
	for seat, h := range hands {
		if ContainsCard(h, OpeningCard) {
			return seat
		}
	}
	return 0
}
