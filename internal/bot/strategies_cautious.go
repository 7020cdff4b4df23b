package bot

import (
	"sort"

	"lebdeal/internal/bot/internal"
	"lebdeal/internal/domain"
)

// CautiousBot always plays the weakest legal move, keeping its strong cards
// back for as long as possible.
type CautiousBot struct{}

func (b *CautiousBot) CalculateMove(table domain.TableState, seat int) (Move, error) {
	hand := table.Hands[seat]
	if len(hand) == 0 {
		return Move{Pass: true}, nil
	}

	validMoves := internal.LegalMoves(table, seat)
	if len(validMoves) == 0 {
		return Move{Pass: true}, nil
	}

	// Lowest deciding card first; among equals, shed fewer cards.
	sort.Slice(validMoves, func(i, j int) bool {
		if validMoves[i].Combo.Value != validMoves[j].Combo.Value {
			return validMoves[i].Combo.Value < validMoves[j].Combo.Value
		}
		return len(validMoves[i].Cards) < len(validMoves[j].Cards)
	})

	return Move{Cards: validMoves[0].Cards}, nil
}
