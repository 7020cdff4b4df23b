package internal

import (
	"strings"
	"testing"

	"lebdeal/internal/domain"
)

var rankByName = map[string]int32{
	"3": 0, "4": 1, "5": 2, "6": 3, "7": 4, "8": 5, "9": 6,
	"10": 7, "J": 8, "Q": 9, "K": 10, "A": 11, "2": 12,
}

var suitByName = map[string]int32{"d": 0, "c": 1, "h": 2, "s": 3}

func card(t *testing.T, name string) domain.Card {
	t.Helper()
	suit, ok := suitByName[name[len(name)-1:]]
	if !ok {
		t.Fatalf("bad suit in card %q", name)
	}
	rank, ok := rankByName[name[:len(name)-1]]
	if !ok {
		t.Fatalf("bad rank in card %q", name)
	}
	return domain.Card{Rank: rank, Suit: suit}
}

func cards(t *testing.T, names string) []domain.Card {
	t.Helper()
	var out []domain.Card
	for _, name := range strings.Fields(names) {
		out = append(out, card(t, name))
	}
	return out
}

// buildTable constructs an in-progress table from explicit hands, parking
// every undealt deck card in the played history so the partition invariant
// holds.
func buildTable(t *testing.T, hands [][]domain.Card) domain.TableState {
	t.Helper()
	inHand := make(map[domain.Card]bool)
	for _, h := range hands {
		for _, c := range h {
			if inHand[c] {
				t.Fatalf("card %s dealt twice", c)
			}
			inHand[c] = true
		}
	}
	var played []domain.Card
	for _, c := range domain.NewDeck() {
		if !inHand[c] {
			played = append(played, c)
		}
	}
	cloned := make([][]domain.Card, len(hands))
	for i, h := range hands {
		cloned[i] = append([]domain.Card{}, h...)
	}
	table := domain.TableState{
		Seats:    len(hands),
		Phase:    domain.PhaseInProgress,
		Hands:    cloned,
		LastSeat: -1,
		Scores:   domain.NewScoreSheet(len(hands)),
	}
	if len(played) > 0 {
		table.History = []domain.PlayRecord{{Seat: 0, Combo: domain.Combo{Kind: domain.Invalid, Cards: played}}}
	}
	if err := table.CheckIntegrity(); err != nil {
		t.Fatalf("buildTable: %v", err)
	}
	return table
}

func standing(t *testing.T, table *domain.TableState, seat int, names string) {
	t.Helper()
	combo := domain.Classify(cards(t, names))
	if combo.Kind == domain.Invalid {
		t.Fatalf("standing combo %q does not classify", names)
	}
	table.LastCombo = &combo
	table.LastSeat = seat
}
