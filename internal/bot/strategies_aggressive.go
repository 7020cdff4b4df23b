package bot

import (
	"sort"

	"lebdeal/internal/bot/internal"
	"lebdeal/internal/domain"
)

// AggressiveBot sheds as many cards as it can per turn, dumping its biggest
// combinations early and never passing while any legal move remains.
type AggressiveBot struct{}

func (b *AggressiveBot) CalculateMove(table domain.TableState, seat int) (Move, error) {
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
	scored := internal.BuildScoredMoves(hand, validMoves, weights, false)

	sort.Slice(scored, func(i, j int) bool {
		if len(scored[i].Move.Cards) != len(scored[j].Move.Cards) {
			return len(scored[i].Move.Cards) > len(scored[j].Move.Cards)
		}
		return scored[i].Score > scored[j].Score
	})

	return Move{Cards: scored[0].Move.Cards}, nil
}
