package domain

import (
	"strings"
	"testing"
)

var rankByName = map[string]int32{
	"3": 0, "4": 1, "5": 2, "6": 3, "7": 4, "8": 5, "9": 6,
	"10": 7, "J": 8, "Q": 9, "K": 10, "A": 11, "2": 12,
}

var suitByName = map[string]int32{"d": 0, "c": 1, "h": 2, "s": 3}

// card parses "3d", "10h", "Ks" into a Card.
func card(t *testing.T, name string) Card {
	t.Helper()
	suit, ok := suitByName[name[len(name)-1:]]
	if !ok {
		t.Fatalf("bad suit in card %q", name)
	}
	rank, ok := rankByName[name[:len(name)-1]]
	if !ok {
		t.Fatalf("bad rank in card %q", name)
	}
	return Card{Rank: rank, Suit: suit}
}

// cards parses a space-separated card list.
func cards(t *testing.T, names string) []Card {
	t.Helper()
	var out []Card
	for _, name := range strings.Fields(names) {
		out = append(out, card(t, name))
	}
	return out
}

// buildTable constructs an in-progress table from explicit hands. Every deck
// card not in a hand is placed in the played history so the partition
// invariant holds; tests then set the standing combo and acting seat to
// shape the scenario.
func buildTable(t *testing.T, hands [][]Card) TableState {
	t.Helper()
	inHand := make(map[Card]bool)
	for _, h := range hands {
		for _, c := range h {
			if inHand[c] {
				t.Fatalf("card %s dealt twice", c)
			}
			inHand[c] = true
		}
	}
	var played []Card
	for _, c := range NewDeck() {
		if !inHand[c] {
			played = append(played, c)
		}
	}
	table := TableState{
		Seats:    len(hands),
		Phase:    PhaseInProgress,
		Hands:    cloneHands(hands),
		LastSeat: -1,
		Scores:   NewScoreSheet(len(hands)),
	}
	if len(played) > 0 {
		table.History = []PlayRecord{{Seat: 0, Combo: Combo{Kind: Invalid, Cards: played}}}
	}
	if err := table.CheckIntegrity(); err != nil {
		t.Fatalf("buildTable: %v", err)
	}
	return table
}

// standing marks a combo as the one to beat. Its cards must already be
// outside every hand (they live in the played history).
func standing(t *testing.T, table *TableState, seat int, names string) {
	t.Helper()
	combo := Classify(cards(t, names))
	if combo.Kind == Invalid {
		t.Fatalf("standing combo %q does not classify", names)
	}
	table.LastCombo = &combo
	table.LastSeat = seat
}

// dealBlocks deals the ordered deck in 13-card blocks; seat 0 receives the
// 3d and therefore opens.
func dealBlocks() [][]Card {
	deck := NewDeck()
	hands := make([][]Card, 4)
	for i := range hands {
		hands[i] = append([]Card{}, deck[i*13:(i+1)*13]...)
	}
	return hands
}
