package domain

import "fmt"

// Reason is a stable rejection code surfaced to callers. Rejections are
// expected outcomes, not faults: the caller corrects the action and retries
// against the same snapshot.
type Reason string

const (
	ReasonWrongTurn                  Reason = "wrong_turn"
	ReasonInvalidCombo               Reason = "invalid_combo"
	ReasonCardsNotOwned              Reason = "cards_not_owned"
	ReasonDoesNotBeat                Reason = "does_not_beat"
	ReasonMustOpenWithFixedCard      Reason = "must_open_with_fixed_card"
	ReasonMustPlayHighestSingle      Reason = "must_play_highest_single"
	ReasonMustBeatOpponentAboutToWin Reason = "must_beat_opponent_about_to_win"
	ReasonMustLead                   Reason = "must_lead"
	ReasonStaleState                 Reason = "stale_state"
)

// Rejection explains a refused action. RequiredCard, when set, names the card
// that would have made the action legal; both the client UI and the bot
// self-correction path consume it.
type Rejection struct {
	Reason       Reason `json:"reason"`
	RequiredCard *Card  `json:"required_card,omitempty"`
}

func (r *Rejection) String() string {
	if r.RequiredCard != nil {
		return fmt.Sprintf("%s (required %s)", r.Reason, r.RequiredCard)
	}
	return string(r.Reason)
}

// Action is the single sealed action type consumed by Validate. Both the
// play and pass variants flow through the same entry point so a rule added
// to the validator structurally cannot be enforced on one variant and
// forgotten on the other.
type Action struct {
	Pass  bool   `json:"pass"`
	Cards []Card `json:"cards,omitempty"`
}

// PlayAction builds a play action.
func PlayAction(cards ...Card) Action {
	return Action{Cards: cards}
}

// PassAction builds a pass action.
func PassAction() Action {
	return Action{Pass: true}
}

// Validate is the single legality gate for every submitted action, whether
// it originates from a human request, a bot decision or a scheduled
// auto-pass. It never mutates the given snapshot: on acceptance it returns
// the successor state, on rejection the Rejection, and a non-nil error only
// for integrity violations (ErrMalformedHandState), which abandon the match.
func Validate(table TableState, actor int, action Action) (TableState, *Rejection, error) {
	if err := table.CheckIntegrity(); err != nil {
		return TableState{}, nil, err
	}

	if table.Phase != PhaseAwaitingOpen && table.Phase != PhaseInProgress {
		return TableState{}, &Rejection{Reason: ReasonWrongTurn}, nil
	}
	if actor != table.ActingSeat {
		return TableState{}, &Rejection{Reason: ReasonWrongTurn}, nil
	}

	if table.Phase == PhaseAwaitingOpen {
		return validateOpen(table, actor, action)
	}

	if action.Pass {
		return validatePass(table, actor)
	}
	return validatePlay(table, actor, action.Cards)
}

func validateOpen(table TableState, actor int, action Action) (TableState, *Rejection, error) {
	if action.Pass {
		return TableState{}, &Rejection{Reason: ReasonMustOpenWithFixedCard, RequiredCard: &OpeningCard}, nil
	}
	if !ownsAll(table.Hands[actor], action.Cards) {
		return TableState{}, &Rejection{Reason: ReasonCardsNotOwned}, nil
	}
	combo := Classify(action.Cards)
	if combo.Kind == Invalid {
		return TableState{}, &Rejection{Reason: ReasonInvalidCombo}, nil
	}
	if !ContainsCard(combo.Cards, OpeningCard) {
		return TableState{}, &Rejection{Reason: ReasonMustOpenWithFixedCard, RequiredCard: &OpeningCard}, nil
	}
	return applyPlay(table, actor, combo), nil, nil
}

func validatePlay(table TableState, actor int, cards []Card) (TableState, *Rejection, error) {
	if !ownsAll(table.Hands[actor], cards) {
		return TableState{}, &Rejection{Reason: ReasonCardsNotOwned}, nil
	}
	combo := Classify(cards)
	if combo.Kind == Invalid {
		return TableState{}, &Rejection{Reason: ReasonInvalidCombo}, nil
	}

	// Forced-highest-single rule: with the following seat one card from
	// winning and a single contested, the actor may not hold back a higher
	// single. Checked before the beat comparison so the rejection names the
	// demanded card even when the submitted single would not have beaten the
	// table either. A single led against a pair or larger combo is not a
	// contested single; that play falls through to the beat comparison.
	if combo.Kind == Single && (table.LastCombo == nil || table.LastCombo.Kind == Single) {
		if required, forced := forcedSingle(table, actor); forced && combo.Cards[0] != required {
			req := required
			return TableState{}, &Rejection{Reason: ReasonMustPlayHighestSingle, RequiredCard: &req}, nil
		}
	}

	if table.LastCombo != nil {
		if combo.Size() != table.LastCombo.Size() {
			return TableState{}, &Rejection{Reason: ReasonDoesNotBeat}, nil
		}
		beats, err := Beats(*table.LastCombo, combo)
		if err != nil {
			return TableState{}, nil, err
		}
		if !beats {
			return TableState{}, &Rejection{Reason: ReasonDoesNotBeat}, nil
		}
	}

	return applyPlay(table, actor, combo), nil, nil
}

func validatePass(table TableState, actor int) (TableState, *Rejection, error) {
	if table.LastCombo == nil {
		return TableState{}, &Rejection{Reason: ReasonMustLead}, nil
	}

	// Pass side of the forced-highest-single rule: passing is only legal
	// when no single in the actor's hand beats the standing combo.
	if table.LastCombo.Kind == Single {
		if required, forced := forcedSingle(table, actor); forced {
			req := required
			return TableState{}, &Rejection{Reason: ReasonMustBeatOpponentAboutToWin, RequiredCard: &req}, nil
		}
	}

	next := table.Clone()
	next.ActingSeat = NextSeat(actor, table.Seats)
	if next.ActingSeat == next.LastSeat {
		// Control returned to the combo owner: the trick is over and that
		// seat leads freely.
		next.LastCombo = nil
		next.LastSeat = -1
	}
	return next, nil, nil
}

// forcedSingle reports whether the forced-highest-single rule binds the actor
// and, if so, which card it demands. It binds when the next seat holds
// exactly one card, the contested combination is a single (or the actor is
// leading a single), and the actor holds at least one card beating the
// standing combo.
func forcedSingle(table TableState, actor int) (Card, bool) {
	next := NextSeat(actor, table.Seats)
	if table.RemainingCards(next) != 1 {
		return Card{}, false
	}
	var best Card
	bestPower := int32(-1)
	for _, c := range table.Hands[actor] {
		if table.LastCombo != nil && CardPower(c) <= table.LastCombo.Value {
			continue
		}
		if p := CardPower(c); p > bestPower {
			best, bestPower = c, p
		}
	}
	if bestPower < 0 {
		return Card{}, false
	}
	return best, true
}

func applyPlay(table TableState, actor int, combo Combo) TableState {
	next := table.Clone()
	next.Hands[actor] = RemoveCards(next.Hands[actor], combo.Cards)
	next.History = append(next.History, PlayRecord{Seat: actor, Combo: combo})
	next.LastCombo = &combo
	next.LastSeat = actor
	if next.Phase == PhaseAwaitingOpen {
		next.Phase = PhaseInProgress
	}

	if len(next.Hands[actor]) == 0 {
		// Match ends immediately in the actor's favor regardless of whose
		// turn would logically follow.
		next.Phase = PhaseMatchFinished
		next.ActingSeat = actor
		return next
	}

	next.ActingSeat = NextSeat(actor, table.Seats)
	return next
}

func ownsAll(hand []Card, cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	for _, c := range cards {
		if !ContainsCard(hand, c) {
			return false
		}
	}
	return true
}
