package domain

import "fmt"

// PenaltyTier maps a remaining-card band to a point multiplier.
type PenaltyTier struct {
	MaxCards   int   `json:"max_cards"` // band upper bound, inclusive
	Multiplier int32 `json:"multiplier"`
}

// Rules carries the tunable scoring parameters of a game session.
type Rules struct {
	ScoreLimit   int32         `json:"score_limit"`
	PenaltyTiers []PenaltyTier `json:"penalty_tiers"`
}

// DefaultRules returns the standard scoring table: one point per card for
// 1-4 remaining, doubled for 5-9, tripled for 10-13, game over at 100.
func DefaultRules() Rules {
	return Rules{
		ScoreLimit: 100,
		PenaltyTiers: []PenaltyTier{
			{MaxCards: 4, Multiplier: 1},
			{MaxCards: 9, Multiplier: 2},
			{MaxCards: 13, Multiplier: 3},
		},
	}
}

// PenaltyPoints computes one seat's penalty for a finished match.
func PenaltyPoints(remaining int, rules Rules) int32 {
	if remaining <= 0 {
		return 0
	}
	for _, tier := range rules.PenaltyTiers {
		if remaining <= tier.MaxCards {
			return int32(remaining) * tier.Multiplier
		}
	}
	// Beyond the last band; charge the heaviest multiplier.
	last := rules.PenaltyTiers[len(rules.PenaltyTiers)-1]
	return int32(remaining) * last.Multiplier
}

// SettleMatch scores a finished match: each losing seat is charged its
// remaining cards times the band multiplier, deltas are appended to the
// score sheet, and the phase moves to GameFinished when any running total
// crossed the limit. Otherwise the state stays in MatchFinished until
// NextMatch deals the following hand.
func SettleMatch(table TableState, rules Rules) (TableState, error) {
	if table.Phase != PhaseMatchFinished {
		return TableState{}, fmt.Errorf("settle: table in phase %s", table.Phase)
	}
	next := table.Clone()
	for seat := 0; seat < next.Seats; seat++ {
		delta := PenaltyPoints(next.RemainingCards(seat), rules)
		next.Scores.Deltas[seat] = append(next.Scores.Deltas[seat], delta)
		next.Scores.Totals[seat] += delta
	}
	for _, total := range next.Scores.Totals {
		if total >= rules.ScoreLimit {
			next.Phase = PhaseGameFinished
			break
		}
	}
	return next, nil
}

// NextMatch resets a settled table for the following match: fresh externally
// dealt hands, empty history, no standing combo, and the opening-card holder
// to act. The score sheet carries over; everything else starts clean so no
// stale play state can bleed into the new match.
func NextMatch(table TableState, hands [][]Card) (TableState, error) {
	if table.Phase != PhaseMatchFinished {
		return TableState{}, fmt.Errorf("next match: table in phase %s", table.Phase)
	}
	if len(hands) != table.Seats {
		return TableState{}, fmt.Errorf("next match: %d hands for %d seats", len(hands), table.Seats)
	}
	next := table.Clone()
	next.Phase = PhaseAwaitingOpen
	next.Hands = cloneHands(hands)
	for _, h := range next.Hands {
		SortCards(h)
	}
	next.History = nil
	next.LastCombo = nil
	next.LastSeat = -1
	next.Match++
	if err := next.CheckIntegrity(); err != nil {
		return TableState{}, err
	}
	next.ActingSeat = openerSeat(next.Hands)
	return next, nil
}

// GameWinner picks the winning seat of a finished game: lowest running
// total; exact ties go to the seat that reached its final total earliest
// (the smaller index of its last penalized match, with never-penalized
// counting as earliest); any remaining tie goes to the lowest seat index.
func GameWinner(scores ScoreSheet) int {
	winner := 0
	for seat := 1; seat < len(scores.Totals); seat++ {
		switch {
		case scores.Totals[seat] < scores.Totals[winner]:
			winner = seat
		case scores.Totals[seat] == scores.Totals[winner]:
			if lastPenalizedMatch(scores.Deltas[seat]) < lastPenalizedMatch(scores.Deltas[winner]) {
				winner = seat
			}
		}
	}
	return winner
}

func lastPenalizedMatch(deltas []int32) int {
	last := -1
	for i, d := range deltas {
		if d > 0 {
			last = i
		}
	}
	return last
}
