package domain

import (
	"errors"
	"testing"
)

func rejectionReason(t *testing.T, rej *Rejection, want Reason) {
	t.Helper()
	if rej == nil {
		t.Fatalf("action accepted, want rejection %s", want)
	}
	if rej.Reason != want {
		t.Fatalf("rejection = %s, want %s", rej.Reason, want)
	}
}

func mustAccept(t *testing.T, table TableState, actor int, action Action) TableState {
	t.Helper()
	next, rej, err := Validate(table, actor, action)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if rej != nil {
		t.Fatalf("action rejected: %s", rej)
	}
	return next
}

func TestOpeningConstraint(t *testing.T) {
	table, err := NewTable(dealBlocks())
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if table.Phase != PhaseAwaitingOpen {
		t.Fatalf("phase = %s, want %s", table.Phase, PhaseAwaitingOpen)
	}
	if table.ActingSeat != 0 {
		t.Fatalf("acting seat = %d, want the 3d holder (seat 0)", table.ActingSeat)
	}

	t.Run("other seat cannot act", func(t *testing.T) {
		_, rej, _ := Validate(table, 1, PlayAction(card(t, "7d")))
		rejectionReason(t, rej, ReasonWrongTurn)
	})

	t.Run("opener cannot pass", func(t *testing.T) {
		_, rej, _ := Validate(table, 0, PassAction())
		rejectionReason(t, rej, ReasonMustOpenWithFixedCard)
	})

	t.Run("opening play must include the 3d", func(t *testing.T) {
		_, rej, _ := Validate(table, 0, PlayAction(card(t, "4d")))
		rejectionReason(t, rej, ReasonMustOpenWithFixedCard)
		if rej.RequiredCard == nil || *rej.RequiredCard != OpeningCard {
			t.Fatalf("required card = %v, want %s", rej.RequiredCard, OpeningCard)
		}
	})

	t.Run("opening play must classify", func(t *testing.T) {
		_, rej, _ := Validate(table, 0, PlayAction(cards(t, "3d 4c")...))
		rejectionReason(t, rej, ReasonInvalidCombo)
	})

	t.Run("unowned cards rejected", func(t *testing.T) {
		_, rej, _ := Validate(table, 0, PlayAction(card(t, "Kd")))
		rejectionReason(t, rej, ReasonCardsNotOwned)
	})

	t.Run("single 3d opens", func(t *testing.T) {
		next := mustAccept(t, table, 0, PlayAction(card(t, "3d")))
		if next.Phase != PhaseInProgress {
			t.Errorf("phase = %s, want %s", next.Phase, PhaseInProgress)
		}
		if next.ActingSeat != 3 {
			t.Errorf("acting seat = %d, want 3 (right of seat 0)", next.ActingSeat)
		}
		if next.RemainingCards(0) != 12 {
			t.Errorf("opener holds %d cards, want 12", next.RemainingCards(0))
		}
		if next.LastCombo == nil || next.LastCombo.Kind != Single {
			t.Errorf("standing combo = %v, want the opening single", next.LastCombo)
		}
		// The input snapshot is untouched.
		if table.RemainingCards(0) != 13 || table.Phase != PhaseAwaitingOpen {
			t.Error("Validate mutated the input snapshot")
		}
	})

	t.Run("pair containing 3d opens", func(t *testing.T) {
		next := mustAccept(t, table, 0, PlayAction(cards(t, "3d 3c")...))
		if next.LastCombo.Kind != Pair {
			t.Errorf("standing combo kind = %v, want pair", next.LastCombo.Kind)
		}
	})
}

func TestPlayMustBeatTable(t *testing.T) {
	table := buildTable(t, [][]Card{
		cards(t, "5d Kh 8c 8h"),
		cards(t, "6d 6c Qd Qh"),
		cards(t, "7d 10s Jc 2s"),
		cards(t, "3c 4c Ah 2h"),
	})
	standing(t, &table, 2, "9c")
	table.ActingSeat = 0

	t.Run("lower single rejected", func(t *testing.T) {
		_, rej, _ := Validate(table, 0, PlayAction(card(t, "5d")))
		rejectionReason(t, rej, ReasonDoesNotBeat)
	})

	t.Run("wrong cardinality rejected", func(t *testing.T) {
		_, rej, _ := Validate(table, 0, PlayAction(cards(t, "8c 8h")...))
		rejectionReason(t, rej, ReasonDoesNotBeat)
	})

	t.Run("higher single accepted", func(t *testing.T) {
		next := mustAccept(t, table, 0, PlayAction(card(t, "Kh")))
		if next.LastSeat != 0 || next.ActingSeat != 3 {
			t.Errorf("lastSeat=%d acting=%d, want 0 and 3", next.LastSeat, next.ActingSeat)
		}
	})
}

// Scenario: the seat after the actor holds exactly one card and a single is
// contested.
func TestForcedHighestSingle(t *testing.T) {
	newScenario := func(t *testing.T) TableState {
		table := buildTable(t, [][]Card{
			cards(t, "Qs"), // next of seat 1, one card from winning
			cards(t, "5d Kh 7c 7h"),
			cards(t, "6d 10s Jc 2s"),
			cards(t, "3c 4c Ah 2h"),
		})
		standing(t, &table, 2, "9c")
		table.ActingSeat = 1
		return table
	}

	t.Run("highest beating single accepted", func(t *testing.T) {
		table := newScenario(t)
		next := mustAccept(t, table, 1, PlayAction(card(t, "Kh")))
		if next.ActingSeat != 0 {
			t.Errorf("acting seat = %d, want 0", next.ActingSeat)
		}
	})

	t.Run("holding back the king rejected", func(t *testing.T) {
		table := newScenario(t)
		_, rej, _ := Validate(table, 1, PlayAction(card(t, "5d")))
		rejectionReason(t, rej, ReasonMustPlayHighestSingle)
		if rej.RequiredCard == nil || *rej.RequiredCard != card(t, "Kh") {
			t.Fatalf("required card = %v, want Kh", rej.RequiredCard)
		}
	})

	t.Run("pass with a beating single rejected", func(t *testing.T) {
		table := newScenario(t)
		_, rej, _ := Validate(table, 1, PassAction())
		rejectionReason(t, rej, ReasonMustBeatOpponentAboutToWin)
	})

	t.Run("pass allowed without a beating single", func(t *testing.T) {
		table := newScenario(t)
		standing(t, &table, 2, "Ad")
		// Hand tops out at Kh; nothing beats the ace.
		mustAccept(t, table, 1, PassAction())
	})

	t.Run("pairs do not trigger the rule", func(t *testing.T) {
		table := newScenario(t)
		standing(t, &table, 2, "9d 9c")
		mustAccept(t, table, 1, PassAction())
	})

	t.Run("single against a pair is a plain mismatch", func(t *testing.T) {
		// No single can answer a pair, so the rule must stay out of it: the
		// rejection is the cardinality mismatch, never a demand for the
		// actor's highest card.
		table := newScenario(t)
		standing(t, &table, 2, "9d 9c")
		_, rej, _ := Validate(table, 1, PlayAction(card(t, "5d")))
		rejectionReason(t, rej, ReasonDoesNotBeat)
		if rej.RequiredCard != nil {
			t.Fatalf("required card = %v, want none", rej.RequiredCard)
		}
	})

	t.Run("rule does not bind when next seat holds two cards", func(t *testing.T) {
		table := buildTable(t, [][]Card{
			cards(t, "Qs Qd"),
			cards(t, "5d Kh 7c 7h"),
			cards(t, "6d 10s Jc 2s"),
			cards(t, "3c 4c Ah 2h"),
		})
		standing(t, &table, 2, "9c")
		table.ActingSeat = 1
		mustAccept(t, table, 1, PassAction())
	})

	t.Run("free lead of a single must be the highest card", func(t *testing.T) {
		table := newScenario(t)
		table.LastCombo = nil
		table.LastSeat = -1
		_, rej, _ := Validate(table, 1, PlayAction(card(t, "5d")))
		rejectionReason(t, rej, ReasonMustPlayHighestSingle)
		if rej.RequiredCard == nil || *rej.RequiredCard != card(t, "Kh") {
			t.Fatalf("required card = %v, want Kh", rej.RequiredCard)
		}
		mustAccept(t, table, 1, PlayAction(card(t, "Kh")))
	})

	t.Run("free lead of a pair is unconstrained", func(t *testing.T) {
		table := newScenario(t)
		table.LastCombo = nil
		table.LastSeat = -1
		mustAccept(t, table, 1, PlayAction(cards(t, "7c 7h")...))
	})
}

func TestPassBookkeeping(t *testing.T) {
	table := buildTable(t, [][]Card{
		cards(t, "5d 5c Kh Ks"),
		cards(t, "6d 6c Qd Qh"),
		cards(t, "7d 7c Jc Js"),
		cards(t, "8d 8c Ah As"),
	})
	standing(t, &table, 2, "9c")
	table.ActingSeat = 1

	t.Run("pass advances without touching the standing combo", func(t *testing.T) {
		next := mustAccept(t, table, 1, PassAction())
		if next.ActingSeat != 0 {
			t.Errorf("acting seat = %d, want 0", next.ActingSeat)
		}
		if next.LastCombo == nil || next.LastSeat != 2 {
			t.Error("pass must not clear a standing combo mid-trick")
		}
	})

	t.Run("trick resets when control returns to the combo owner", func(t *testing.T) {
		state := table
		for _, seat := range []int{1, 0, 3} {
			state.ActingSeat = seat
			state = mustAccept(t, state, seat, PassAction())
		}
		if state.ActingSeat != 2 {
			t.Fatalf("acting seat = %d, want the combo owner (2)", state.ActingSeat)
		}
		if state.LastCombo != nil || state.LastSeat != -1 {
			t.Fatal("trick should have reset once control returned to the owner")
		}

		t.Run("owner cannot pass a free lead", func(t *testing.T) {
			_, rej, _ := Validate(state, 2, PassAction())
			rejectionReason(t, rej, ReasonMustLead)
		})

		t.Run("owner leads any combo freely", func(t *testing.T) {
			mustAccept(t, state, 2, PlayAction(cards(t, "7d 7c")...))
		})
	})
}

func TestMatchEndsOnEmptyHand(t *testing.T) {
	table := buildTable(t, [][]Card{
		cards(t, "5d 5c Kh Ks"),
		cards(t, "Qd Qh"),
		cards(t, "7d 7c Jc Js"),
		cards(t, "8d 8c Ah As"),
	})
	standing(t, &table, 0, "9d 9c")
	table.ActingSeat = 1

	next := mustAccept(t, table, 1, PlayAction(cards(t, "Qd Qh")...))
	if next.Phase != PhaseMatchFinished {
		t.Fatalf("phase = %s, want %s", next.Phase, PhaseMatchFinished)
	}
	if next.MatchWinner() != 1 {
		t.Fatalf("match winner = %d, want 1", next.MatchWinner())
	}

	t.Run("no further actions accepted", func(t *testing.T) {
		_, rej, _ := Validate(next, 3, PassAction())
		rejectionReason(t, rej, ReasonWrongTurn)
	})
}

// Re-submitting an accepted action against the successor state must be
// rejected, never silently re-applied.
func TestResubmissionRejected(t *testing.T) {
	table := buildTable(t, [][]Card{
		cards(t, "5d 5c Kh Ks"),
		cards(t, "6d 6c Qd Qh"),
		cards(t, "7d 7c Jc Js"),
		cards(t, "8d 8c Ah As"),
	})
	standing(t, &table, 2, "9c")
	table.ActingSeat = 0

	action := PlayAction(card(t, "Kh"))
	next := mustAccept(t, table, 0, action)
	_, rej, _ := Validate(next, 0, action)
	rejectionReason(t, rej, ReasonWrongTurn)
}

func TestMalformedHandStateFatal(t *testing.T) {
	table := buildTable(t, [][]Card{
		cards(t, "5d 5c"),
		cards(t, "6d 6c"),
		cards(t, "7d 7c"),
		cards(t, "8d 8c"),
	})
	table.ActingSeat = 0

	t.Run("duplicated card", func(t *testing.T) {
		bad := table.Clone()
		bad.Hands[1][0] = card(t, "5d") // now held by two seats
		_, _, err := Validate(bad, 0, PlayAction(card(t, "5d")))
		if !errors.Is(err, ErrMalformedHandState) {
			t.Fatalf("err = %v, want ErrMalformedHandState", err)
		}
	})

	t.Run("missing card", func(t *testing.T) {
		bad := table.Clone()
		bad.Hands[1] = bad.Hands[1][:1]
		_, _, err := Validate(bad, 0, PlayAction(card(t, "5d")))
		if !errors.Is(err, ErrMalformedHandState) {
			t.Fatalf("err = %v, want ErrMalformedHandState", err)
		}
	})
}
