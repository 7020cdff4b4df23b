package internal

import (
	"lebdeal/internal/domain"
)

// ValidMove is a play the validator has already accepted.
type ValidMove struct {
	Cards []domain.Card
	Combo domain.Combo
}

// LegalMoves enumerates every subset of the seat's hand that the validator
// accepts against the current table. The validator is the only legality
// oracle here: candidates that classify are still trial-run through it, so
// the opening constraint and the forced-single rule shape the result without
// this package re-stating them.
func LegalMoves(table domain.TableState, seat int) []ValidMove {
	if seat < 0 || seat >= table.Seats {
		return nil
	}
	hand := table.Hands[seat]
	var moves []ValidMove
	for _, size := range []int{1, 2, 3, 5} {
		forEachSubset(hand, size, func(cards []domain.Card) {
			combo := domain.Classify(cards)
			if combo.Kind == domain.Invalid {
				return
			}
			_, rej, err := domain.Validate(table, seat, domain.PlayAction(cards...))
			if err != nil || rej != nil {
				return
			}
			moves = append(moves, ValidMove{Cards: cards, Combo: combo})
		})
	}
	return moves
}

// CanPass reports whether the validator accepts a pass from the seat.
func CanPass(table domain.TableState, seat int) bool {
	_, rej, err := domain.Validate(table, seat, domain.PassAction())
	return err == nil && rej == nil
}

// forEachSubset visits every size-k subset of the hand. Each callback gets
// its own slice so the visitor may retain it.
func forEachSubset(hand []domain.Card, k int, visit func([]domain.Card)) {
	n := len(hand)
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		subset := make([]domain.Card, k)
		for i, j := range idx {
			subset[i] = hand[j]
		}
		visit(subset)

		// Advance to the next combination in lexicographic index order.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
