package internal

import (
	"testing"

	"lebdeal/internal/domain"
)

func TestLegalMovesOnLead(t *testing.T) {
	table := buildTable(t, [][]domain.Card{
		cards(t, "3d 3h 4d 5d 6d 7d"),
		cards(t, "As Ac"),
		cards(t, "Ks Kc"),
		cards(t, "Qs Qc"),
	})
	table.ActingSeat = 0

	moves := LegalMoves(table, 0)

	counts := make(map[domain.ComboKind]int)
	for _, m := range moves {
		counts[m.Combo.Kind]++
	}
	if counts[domain.Single] != 6 {
		t.Errorf("singles = %d, want 6", counts[domain.Single])
	}
	if counts[domain.Pair] != 1 {
		t.Errorf("pairs = %d, want 1", counts[domain.Pair])
	}
	if counts[domain.Straight] != 1 {
		t.Errorf("straights = %d, want 1", counts[domain.Straight])
	}
	if counts[domain.StraightFlush] != 1 {
		t.Errorf("straight flushes = %d, want 1", counts[domain.StraightFlush])
	}
	if len(moves) != 9 {
		t.Errorf("total moves = %d, want 9", len(moves))
	}
}

func TestLegalMovesBeatingSingle(t *testing.T) {
	table := buildTable(t, [][]domain.Card{
		cards(t, "8s 7c"),
		cards(t, "3d Kh 2c"),
		cards(t, "As Ad"),
		cards(t, "Qs Qd"),
	})
	standing(t, &table, 0, "8h")
	table.ActingSeat = 1

	moves := LegalMoves(table, 1)
	if len(moves) != 2 {
		t.Fatalf("moves = %d, want 2", len(moves))
	}
	for _, m := range moves {
		if m.Combo.Value <= domain.CardPower(card(t, "8h")) {
			t.Errorf("move %v does not beat the 8h", m.Cards)
		}
	}
}

// With the next seat down to one card and a single standing, the only move
// the validator allows is the highest beating single, and passing is out.
func TestLegalMovesUnderForcedSingle(t *testing.T) {
	table := buildTable(t, [][]domain.Card{
		cards(t, "8s 7c"),
		cards(t, "4h"),
		cards(t, "5d Qh Kh"),
		cards(t, "6s 6d"),
	})
	standing(t, &table, 0, "9c")
	table.ActingSeat = 2

	moves := LegalMoves(table, 2)
	if len(moves) != 1 {
		t.Fatalf("moves = %d, want exactly the demanded single", len(moves))
	}
	want := card(t, "Kh")
	if moves[0].Cards[0] != want {
		t.Errorf("move = %s, want %s", moves[0].Cards[0], want)
	}
	if CanPass(table, 2) {
		t.Error("pass should be illegal while an opponent is about to win")
	}
}

func TestCanPass(t *testing.T) {
	table := buildTable(t, [][]domain.Card{
		cards(t, "8s 7c"),
		cards(t, "3d 4c"),
		cards(t, "As Ad"),
		cards(t, "Qs Qd"),
	})
	table.ActingSeat = 1

	if CanPass(table, 1) {
		t.Error("pass should be illegal on an empty table")
	}

	standing(t, &table, 0, "2h")
	table.ActingSeat = 1
	if !CanPass(table, 1) {
		t.Error("pass should be legal against a standing combo")
	}
}

func TestLegalMovesDuringOpening(t *testing.T) {
	table := buildTable(t, [][]domain.Card{
		cards(t, "3d 3h 9s"),
		cards(t, "As"),
		cards(t, "Ks"),
		cards(t, "Qs"),
	})
	table.Phase = domain.PhaseAwaitingOpen
	table.ActingSeat = 0

	moves := LegalMoves(table, 0)
	if len(moves) == 0 {
		t.Fatal("opener has no moves")
	}
	opening := card(t, "3d")
	for _, m := range moves {
		if !domain.ContainsCard(m.Cards, opening) {
			t.Errorf("opening move %v does not contain the 3d", m.Cards)
		}
	}
}
