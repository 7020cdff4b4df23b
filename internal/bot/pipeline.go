package bot

import (
	"lebdeal/internal/bot/internal"
	"lebdeal/internal/domain"
)

// LegalPlays returns every play the validator would accept for the seat.
// Runtimes use it for move hints; strategies use it through the same package
// so bot legality can never drift from validator legality.
func LegalPlays(table domain.TableState, seat int) [][]domain.Card {
	moves := internal.LegalMoves(table, seat)
	plays := make([][]domain.Card, 0, len(moves))
	for _, m := range moves {
		plays = append(plays, m.Cards)
	}
	return plays
}

// CanPass reports whether the validator would accept a pass from the seat.
func CanPass(table domain.TableState, seat int) bool {
	return internal.CanPass(table, seat)
}
