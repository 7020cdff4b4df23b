package domain

import (
	"math/rand"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  ComboKind
	}{
		{"Single", "3d", Single},
		{"Pair", "9c 9h", Pair},
		{"Mismatched pair", "9c 10c", Invalid},
		{"Triple", "Jd Jc Js", Triple},
		{"Mismatched triple", "Jd Jc Qs", Invalid},
		{"Four cards", "Jd Jc Jh Js", Invalid},
		{"Straight", "4d 5c 6h 7s 8d", Straight},
		{"Straight ending in ace", "10d Jc Qh Ks Ad", Straight},
		{"Straight ending in two", "Jd Qc Kh As 2d", Straight},
		{"Two cannot open a straight", "2d 3c 4h 5s 6d", Invalid},
		{"Gapped ranks", "4d 5c 6h 7s 9d", Invalid},
		{"Paired rank in straight", "4d 4c 5h 6s 7d", Invalid},
		{"Flush", "3h 5h 8h Jh Kh", Flush},
		{"Full house", "8d 8c 8h Kd Ks", FullHouse},
		{"Four of a kind", "6d 6c 6h 6s 9d", FourOfAKind},
		{"Straight flush", "5s 6s 7s 8s 9s", StraightFlush},
		{"Straight flush beats flush classification", "3d 4d 5d 6d 7d", StraightFlush},
		{"Two and three of one suit", "2h 3h 4h 5h 6h", Flush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(cards(t, tt.cards))
			if got.Kind != tt.want {
				t.Errorf("Classify(%s).Kind = %v, want %v", tt.cards, got.Kind, tt.want)
			}
		})
	}
}

func TestClassifyKeys(t *testing.T) {
	t.Run("full house keyed by triple", func(t *testing.T) {
		low := Classify(cards(t, "8d 8c 8h Ad As"))
		high := Classify(cards(t, "9d 9c 9h 3d 3c"))
		if beats, err := Beats(low, high); err != nil || !beats {
			t.Fatalf("9-high full house should beat 8-high with ace pair (beats=%v err=%v)", beats, err)
		}
	})

	t.Run("four of a kind keyed by quad", func(t *testing.T) {
		low := Classify(cards(t, "6d 6c 6h 6s 2s"))
		high := Classify(cards(t, "7d 7c 7h 7s 3d"))
		if beats, err := Beats(low, high); err != nil || !beats {
			t.Fatalf("quad sevens should beat quad sixes (beats=%v err=%v)", beats, err)
		}
	})

	t.Run("royal flag", func(t *testing.T) {
		royal := Classify(cards(t, "10s Js Qs Ks As"))
		if !royal.Royal {
			t.Error("ace-high straight flush should be flagged royal")
		}
		plain := Classify(cards(t, "9s 10s Js Qs Ks"))
		if plain.Royal {
			t.Error("king-high straight flush should not be flagged royal")
		}
	})
}

func TestClassifyOrderIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	hand := cards(t, "8d 8c 8h Kd Ks")
	want := Classify(hand)
	for i := 0; i < 20; i++ {
		shuffled := append([]Card{}, hand...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := Classify(shuffled)
		if got.Kind != want.Kind || got.Value != want.Value {
			t.Fatalf("classification depends on order: %v vs %v", got, want)
		}
	}
}

// Every 5-card subset must land in exactly one category; a straight that is
// also suited must classify as a straight flush and nothing else.
func TestClassifyFiveCardTotality(t *testing.T) {
	deck := NewDeck()
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 5000; trial++ {
		rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
		pick := append([]Card{}, deck[:5]...)
		combo := Classify(pick)

		sorted := append([]Card{}, pick...)
		SortCards(sorted)
		straight := isConsecutive(sorted)
		flush := allSameSuit(sorted)
		switch {
		case straight && flush:
			if combo.Kind != StraightFlush {
				t.Fatalf("%v: got %v, want straight flush", pick, combo.Kind)
			}
		case combo.Kind == Straight && !straight,
			combo.Kind == Flush && !flush,
			combo.Kind == Straight && flush,
			combo.Kind == Flush && straight:
			t.Fatalf("%v: inconsistent classification %v", pick, combo.Kind)
		}
	}
}

func TestClassifyRejectsDuplicates(t *testing.T) {
	dup := []Card{{Rank: 4, Suit: 1}, {Rank: 4, Suit: 1}}
	if got := Classify(dup); got.Kind != Invalid {
		t.Errorf("duplicate cards classified as %v", got.Kind)
	}
}
