package internal

import "lebdeal/internal/domain"

const (
	scoreTwo        = 20.0
	scoreQuad       = 30.0
	scoreStraight   = 5.0 // per card
	scoreTriple     = 10.0
	scorePair       = 5.0
	scoreHighSingle = 2.0
	scoreLowSingle  = -2.0
)

// EvaluateHand returns a heuristic strength score for the hand. Higher is
// better. Structure is valued via the same greedy pass ProfileHand uses, and
// leftover singles are rewarded only from jack upward.
func EvaluateHand(hand []domain.Card) float64 {
	cards := make([]domain.Card, len(hand))
	copy(cards, hand)
	domain.SortCards(cards)

	score := 0.0
	var n int

	cards, n = extractQuads(cards)
	score += float64(n) * scoreQuad

	cards, n = extractStraights(cards)
	score += float64(n*5) * scoreStraight

	cards, n = extractTriples(cards)
	score += float64(n) * scoreTriple

	cards, n = extractPairs(cards)
	score += float64(n) * scorePair

	for _, c := range cards {
		switch {
		case c.Rank == domain.RankTwo:
			score += scoreTwo
		case c.Rank >= domain.RankJack:
			score += scoreHighSingle
		default:
			score += scoreLowSingle
		}
	}
	return score
}
