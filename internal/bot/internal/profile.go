package internal

import (
	"sort"

	"lebdeal/internal/domain"
)

// HandProfile summarizes a hand's strategic structure for phase-aware scoring.
type HandProfile struct {
	TotalCards    int
	Singles       int
	Pairs         int
	Triples       int
	Quads         int
	Straights     int
	StraightCards int
	Twos          int
}

// ProfileHand analyzes a hand with a greedy structure pass: quads first, then
// five-card straights, then triples and pairs, leaving singles.
func ProfileHand(hand []domain.Card) HandProfile {
	profile := HandProfile{TotalCards: len(hand)}
	if len(hand) == 0 {
		return profile
	}

	cards := make([]domain.Card, len(hand))
	copy(cards, hand)
	domain.SortCards(cards)

	for _, c := range cards {
		if c.Rank == domain.RankTwo {
			profile.Twos++
		}
	}

	var n int
	cards, n = extractQuads(cards)
	profile.Quads = n

	cards, n = extractStraights(cards)
	profile.Straights = n
	profile.StraightCards = n * 5

	cards, n = extractTriples(cards)
	profile.Triples = n

	cards, n = extractPairs(cards)
	profile.Pairs = n

	profile.Singles = len(cards)
	return profile
}

func removeSubset(source []domain.Card, subset []domain.Card) []domain.Card {
	counts := make(map[domain.Card]int, len(subset))
	for _, c := range subset {
		counts[c]++
	}
	rem := make([]domain.Card, 0, len(source))
	for _, c := range source {
		if counts[c] > 0 {
			counts[c]--
			continue
		}
		rem = append(rem, c)
	}
	return rem
}

func extractQuads(cards []domain.Card) ([]domain.Card, int) {
	found := 0
	for i := 0; i <= len(cards)-4; {
		if cards[i].Rank == cards[i+3].Rank {
			quad := make([]domain.Card, 4)
			copy(quad, cards[i:i+4])
			cards = removeSubset(cards, quad)
			found++
			i = 0
			continue
		}
		i++
	}
	return cards, found
}

func extractTriples(cards []domain.Card) ([]domain.Card, int) {
	found := 0
	for i := 0; i <= len(cards)-3; {
		if cards[i].Rank == cards[i+2].Rank {
			triple := make([]domain.Card, 3)
			copy(triple, cards[i:i+3])
			cards = removeSubset(cards, triple)
			found++
			i = 0
			continue
		}
		i++
	}
	return cards, found
}

func extractPairs(cards []domain.Card) ([]domain.Card, int) {
	found := 0
	for i := 0; i <= len(cards)-2; {
		if cards[i].Rank == cards[i+1].Rank {
			pair := make([]domain.Card, 2)
			copy(pair, cards[i:i+2])
			cards = removeSubset(cards, pair)
			found++
			i = 0
			continue
		}
		i++
	}
	return cards, found
}

// extractStraights repeatedly pulls one five-card run of consecutive ranks,
// taking the lowest-suited card of each rank so the strong suits stay behind.
func extractStraights(cards []domain.Card) ([]domain.Card, int) {
	found := 0
	for {
		rankMap := make(map[int32][]domain.Card)
		var ranks []int
		for _, c := range cards {
			if _, ok := rankMap[c.Rank]; !ok {
				ranks = append(ranks, int(c.Rank))
			}
			rankMap[c.Rank] = append(rankMap[c.Rank], c)
		}
		sort.Ints(ranks)

		start := -1
		for i := 0; i+5 <= len(ranks); i++ {
			run := true
			for k := 1; k < 5; k++ {
				if ranks[i+k] != ranks[i+k-1]+1 {
					run = false
					break
				}
			}
			if run {
				start = i
				break
			}
		}
		if start < 0 {
			return cards, found
		}

		straight := make([]domain.Card, 0, 5)
		for k := 0; k < 5; k++ {
			straight = append(straight, rankMap[int32(ranks[start+k])][0])
		}
		cards = removeSubset(cards, straight)
		found++
	}
}
