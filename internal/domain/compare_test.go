package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func TestBeats(t *testing.T) {
	tests := []struct {
		name string
		prev string
		next string
		want bool
	}{
		{"Higher rank single", "9c", "Kh", true},
		{"Higher suit single", "9c", "9h", true},
		{"Lower suit single", "9h", "9c", false},
		{"Two beats ace", "As", "2d", true},
		{"Pair by rank", "8c 8h", "9d 9c", true},
		{"Pair by suit of highest", "9d 9c", "9h 9s", true},
		{"Triple by rank", "5d 5c 5h", "6d 6c 6h", true},
		{"Straight by top card", "4d 5c 6h 7s 8d", "5d 6c 7h 8s 9d", true},
		{"Straight by suit of top card", "4d 5c 6h 7s 8d", "4c 5h 6s 7d 8s", true},
		{"Flush beats straight", "9d 10c Jh Qs Kd", "3h 5h 8h Jh Kh", true},
		{"Straight does not beat flush", "3h 5h 8h Jh Kh", "9d 10c Jh Qs Kd", false},
		{"Full house beats flush", "3h 5h 8h Jh Ah", "4d 4c 4h 9d 9c", true},
		{"Quad beats full house", "Ad Ac Ah Kd Kc", "3d 3c 3h 3s 5d", true},
		{"Straight flush beats quad", "2d 2c 2h 2s Ad", "3s 4s 5s 6s 7s", true},
		{"Higher straight flush", "3s 4s 5s 6s 7s", "4d 5d 6d 7d 8d", true},
		{"Flush compared by highest card", "3h 5h 8h Jh Kh", "4s 6s 9s 10s Qs", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := Classify(cards(t, tt.prev))
			next := Classify(cards(t, tt.next))
			got, err := Beats(prev, next)
			if err != nil {
				t.Fatalf("Beats() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Beats(%s, %s) = %v, want %v", tt.prev, tt.next, got, tt.want)
			}
		})
	}
}

func TestBeatsIncomparable(t *testing.T) {
	single := Classify(cards(t, "9c"))
	pair := Classify(cards(t, "9d 9h"))
	if _, err := Beats(single, pair); !errors.Is(err, ErrIncomparable) {
		t.Errorf("cross-cardinality comparison: err = %v, want ErrIncomparable", err)
	}
	if _, err := Beats(Combo{Kind: Invalid}, single); !errors.Is(err, ErrIncomparable) {
		t.Errorf("invalid combo comparison: err = %v, want ErrIncomparable", err)
	}
}

// Asymmetry and transitivity over random same-cardinality combos.
func TestBeatsOrderProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	deck := NewDeck()

	randomCombo := func(size int) Combo {
		for {
			rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
			combo := Classify(append([]Card{}, deck[:size]...))
			if combo.Kind != Invalid {
				return combo
			}
		}
	}

	for _, size := range []int{1, 2, 5} {
		for trial := 0; trial < 300; trial++ {
			a, b, c := randomCombo(size), randomCombo(size), randomCombo(size)

			ab, _ := Beats(b, a) // a beats b
			ba, _ := Beats(a, b)
			if a.Value != b.Value || a.tier() != b.tier() {
				if ab == ba {
					t.Fatalf("size %d: asymmetry violated for %v vs %v", size, a, b)
				}
			}

			bc, _ := Beats(c, b)
			ac, _ := Beats(c, a)
			if ab && bc && !ac {
				t.Fatalf("size %d: transitivity violated: %v > %v > %v", size, a, b, c)
			}
		}
	}
}
