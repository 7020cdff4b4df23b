package bot

import (
	"sort"

	"lebdeal/internal/bot/internal"
	"lebdeal/internal/domain"
)

// StandardBot plays phase-aware: it scores every legal move by the hand it
// leaves behind and passes when no move is worth the cards it spends.
type StandardBot struct{}

func (b *StandardBot) CalculateMove(table domain.TableState, seat int) (Move, error) {
	hand := table.Hands[seat]
	if len(hand) == 0 {
		return Move{Pass: true}, nil
	}

	validMoves := internal.LegalMoves(table, seat)
	if len(validMoves) == 0 {
		return Move{Pass: true}, nil
	}

	phase := internal.DetectPhase(table)
	weights := DefaultTuning.ForPhase(phase)
	threat := internal.DetectThreat(table, seat, DefaultTuning.ThreatThreshold)

	scored := internal.BuildScoredMoves(hand, validMoves, weights, threat)

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		// Save higher cards when scores are equal.
		return scored[i].Move.Combo.Value < scored[j].Move.Combo.Value
	})

	// When responding, passing is an option worth taking if every move costs
	// more than it saves. The validator still has the last word: a forced
	// single makes passing illegal, so the best move is played instead.
	if table.LastCombo != nil && internal.CanPass(table, seat) {
		currentScore := internal.ScoreHand(hand, weights)
		if scored[0].Score < currentScore+DefaultTuning.PassThreshold {
			return Move{Pass: true}, nil
		}
	}

	return Move{Cards: scored[0].Move.Cards}, nil
}
