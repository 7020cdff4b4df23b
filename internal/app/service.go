package app

import (
	"errors"
	"math/rand"
	"time"

	"lebdeal/internal/domain"
)

// Service contains the use-cases both runtimes share: dealing, the single
// action entry point, and the resulting event stream. It never holds table
// state itself; callers pass a snapshot in and store the successor.
type Service struct {
	rng           *rand.Rand
	rules         domain.Rules
	autoPassDelay time.Duration
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand, rules domain.Rules, autoPassDelay time.Duration) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, rules: rules, autoPassDelay: autoPassDelay}
}

// Rules returns the scoring rules the service settles matches with.
func (s *Service) Rules() domain.Rules {
	return s.rules
}

// AutoPassDelay returns the countdown the runtimes schedule after an
// unbeatable play.
func (s *Service) AutoPassDelay() time.Duration {
	return s.autoPassDelay
}

var (
	ErrTooFewSeats = errors.New("not enough seats to start")
	ErrUnevenSeats = errors.New("deck does not split evenly across seats")
)

// MinPlayersToStartGame is the smallest table the engine deals for.
const MinPlayersToStartGame = 2

// Deal shuffles a fresh deck into even hands. It stands in for the external
// hand source; the engine itself never deals.
func (s *Service) Deal(seats int) [][]domain.Card {
	deck := domain.NewDeck()
	s.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	per := len(deck) / seats
	hands := make([][]domain.Card, seats)
	for i := range hands {
		hands[i] = append([]domain.Card{}, deck[i*per:(i+1)*per]...)
	}
	return hands
}

// StartGame deals the first match of a session. users maps seats to user IDs
// for targeted hand events; empty entries stay untargeted.
func (s *Service) StartGame(seats int, users []string) (domain.TableState, []Event, error) {
	if seats < MinPlayersToStartGame {
		return domain.TableState{}, nil, ErrTooFewSeats
	}
	// A seat count that leaves a remainder would drop cards on the deal and
	// fail the integrity check downstream; reject it up front.
	if domain.DeckSize%seats != 0 {
		return domain.TableState{}, nil, ErrUnevenSeats
	}
	table, err := domain.NewTable(s.Deal(seats))
	if err != nil {
		return domain.TableState{}, nil, err
	}
	events := handDealtEvents(table, users)
	events = append(events, Event{
		Kind:    EventTableStateChanged,
		Payload: TableStateChangedPayload{Table: RedactTable(table)},
	})
	return table, events, nil
}

// Submit runs one action through the validator and drives the lifecycle on
// acceptance. It is the single entry point for human requests, bot decisions
// and scheduled auto-passes. On rejection the events are nil and the input
// snapshot remains current; a non-nil error means the match is corrupt and
// must be abandoned.
func (s *Service) Submit(table domain.TableState, actor int, action domain.Action, users []string) (domain.TableState, []Event, *domain.Rejection, error) {
	next, rej, err := domain.Validate(table, actor, action)
	if err != nil {
		return domain.TableState{}, nil, nil, err
	}
	if rej != nil {
		return table, nil, rej, nil
	}

	if next.Phase == domain.PhaseMatchFinished {
		return s.settle(next, users)
	}

	events := []Event{{
		Kind:    EventTableStateChanged,
		Payload: TableStateChangedPayload{Table: RedactTable(next)},
	}}

	// Only a play can put a fresh combo on the table, and only then is the
	// unbeatable check worth running.
	if !action.Pass && next.LastCombo != nil && domain.Unbeatable(next) {
		events = append(events, Event{
			Kind: EventAutoPassArmed,
			Payload: AutoPassArmedPayload{
				Seat:            next.LastSeat,
				CountdownMillis: int(s.autoPassDelay / time.Millisecond),
			},
		})
	}

	return next, events, nil, nil
}

// settle scores the finished match and either ends the game or deals the
// next match. Both steps happen on one snapshot so a concurrent reader never
// observes a half-reset table.
func (s *Service) settle(table domain.TableState, users []string) (domain.TableState, []Event, *domain.Rejection, error) {
	winner := table.MatchWinner()
	settled, err := domain.SettleMatch(table, s.rules)
	if err != nil {
		return domain.TableState{}, nil, nil, err
	}

	deltas := make([]int32, settled.Seats)
	for seat := 0; seat < settled.Seats; seat++ {
		d := settled.Scores.Deltas[seat]
		deltas[seat] = d[len(d)-1]
	}
	events := []Event{{
		Kind: EventMatchEnded,
		Payload: MatchEndedPayload{
			Match:  settled.Match,
			Winner: winner,
			Deltas: deltas,
			Scores: settled.Scores,
		},
	}}

	if settled.Phase == domain.PhaseGameFinished {
		events = append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				Winner: domain.GameWinner(settled.Scores),
				Scores: settled.Scores,
			},
		})
		events = append(events, Event{
			Kind:    EventTableStateChanged,
			Payload: TableStateChangedPayload{Table: RedactTable(settled)},
		})
		return settled, events, nil, nil
	}

	dealt, err := domain.NextMatch(settled, s.Deal(settled.Seats))
	if err != nil {
		return domain.TableState{}, nil, nil, err
	}
	events = append(events, handDealtEvents(dealt, users)...)
	events = append(events, Event{
		Kind:    EventTableStateChanged,
		Payload: TableStateChangedPayload{Table: RedactTable(dealt)},
	})
	return dealt, events, nil, nil
}

func handDealtEvents(table domain.TableState, users []string) []Event {
	events := make([]Event, 0, table.Seats)
	for seat := 0; seat < table.Seats; seat++ {
		ev := Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Seat: seat,
				Hand: append([]domain.Card{}, table.Hands[seat]...),
			},
		}
		if seat < len(users) && users[seat] != "" {
			ev.Recipients = []string{users[seat]}
		}
		events = append(events, ev)
	}
	return events
}
