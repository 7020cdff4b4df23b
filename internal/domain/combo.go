package domain

// ComboKind is the combination category of a played card set.
type ComboKind int32

const (
	Invalid ComboKind = iota
	Single
	Pair
	Triple
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (k ComboKind) String() string {
	switch k {
	case Single:
		return "single"
	case Pair:
		return "pair"
	case Triple:
		return "triple"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	}
	return "invalid"
}

// Combo is a classified combination. Value is the derived comparison key:
// the power of the deciding card (highest card for singles, pairs, triples,
// straights and flushes; highest card of the triple for full houses; highest
// card of the quad for four of a kind).
type Combo struct {
	Kind  ComboKind `json:"kind"`
	Cards []Card    `json:"cards"` // sorted ascending by power
	Value int32     `json:"value"`
	Royal bool      `json:"royal,omitempty"` // A-high straight flush, display only
}

// Size returns the cardinality of the combination.
func (c Combo) Size() int {
	return len(c.Cards)
}

// tier orders five-card combinations; a higher tier always beats a lower one.
func (c Combo) tier() int32 {
	switch c.Kind {
	case Straight:
		return 0
	case Flush:
		return 1
	case FullHouse:
		return 2
	case FourOfAKind:
		return 3
	case StraightFlush:
		return 4
	}
	return -1
}

// Classify determines the combination formed by the given cards, or a Combo
// with Kind Invalid when they form none. Classification depends only on the
// card multiset, never on input order; the returned Cards are a sorted copy.
func Classify(cards []Card) Combo {
	n := len(cards)
	if n != 1 && n != 2 && n != 3 && n != 5 {
		return Combo{Kind: Invalid}
	}

	sorted := append([]Card{}, cards...)
	SortCards(sorted)
	for i := 1; i < n; i++ {
		if sorted[i] == sorted[i-1] {
			return Combo{Kind: Invalid} // duplicate card
		}
	}

	top := sorted[n-1]

	switch n {
	case 1:
		return Combo{Kind: Single, Cards: sorted, Value: CardPower(top)}
	case 2:
		if sorted[0].Rank == sorted[1].Rank {
			return Combo{Kind: Pair, Cards: sorted, Value: CardPower(top)}
		}
		return Combo{Kind: Invalid}
	case 3:
		if allSameRank(sorted) {
			return Combo{Kind: Triple, Cards: sorted, Value: CardPower(top)}
		}
		return Combo{Kind: Invalid}
	}

	straight := isConsecutive(sorted)
	flush := allSameSuit(sorted)

	switch {
	case straight && flush:
		return Combo{
			Kind:  StraightFlush,
			Cards: sorted,
			Value: CardPower(top),
			Royal: top.Rank == RankAce,
		}
	case quadRank(sorted) >= 0:
		r := quadRank(sorted)
		return Combo{Kind: FourOfAKind, Cards: sorted, Value: r*4 + SuitSpade}
	case tripleRank(sorted) >= 0 && pairRankBeside(sorted) >= 0:
		r := tripleRank(sorted)
		return Combo{Kind: FullHouse, Cards: sorted, Value: highestOfRank(sorted, r)}
	case flush:
		return Combo{Kind: Flush, Cards: sorted, Value: CardPower(top)}
	case straight:
		return Combo{Kind: Straight, Cards: sorted, Value: CardPower(top)}
	}
	return Combo{Kind: Invalid}
}

func allSameRank(cards []Card) bool {
	for _, c := range cards {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}

func allSameSuit(cards []Card) bool {
	for _, c := range cards {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isConsecutive reports five strictly consecutive ranks in Deal order. The
// order never wraps: J-Q-K-A-2 is consecutive (ranks 8..12) but 2-3-4-5-6 is
// not, so a 2 can terminate a straight and never open one.
func isConsecutive(sorted []Card) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank != sorted[i-1].Rank+1 {
			return false
		}
	}
	return true
}

// quadRank returns the rank held by four of the five cards, or -1.
func quadRank(sorted []Card) int32 {
	if sorted[0].Rank == sorted[3].Rank {
		return sorted[0].Rank
	}
	if sorted[1].Rank == sorted[4].Rank {
		return sorted[1].Rank
	}
	return -1
}

// tripleRank returns the rank held by exactly three of the five cards, or -1.
func tripleRank(sorted []Card) int32 {
	counts := rankCounts(sorted)
	for r, n := range counts {
		if n == 3 {
			return r
		}
	}
	return -1
}

// pairRankBeside returns the rank held by exactly two of the five cards, or -1.
func pairRankBeside(sorted []Card) int32 {
	counts := rankCounts(sorted)
	for r, n := range counts {
		if n == 2 {
			return r
		}
	}
	return -1
}

func rankCounts(cards []Card) map[int32]int {
	counts := make(map[int32]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

func highestOfRank(cards []Card, rank int32) int32 {
	best := int32(-1)
	for _, c := range cards {
		if c.Rank == rank && CardPower(c) > best {
			best = CardPower(c)
		}
	}
	return best
}
