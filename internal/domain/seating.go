package domain

import "fmt"

// successors holds the fixed seating traversal per table size. Seats advance
// to the physical right of the current player, which for the canonical
// four-seat layout means seat 0 is followed by seat 3, not seat 1. Every
// consumer of "who acts next" must go through NextSeat; deriving order by
// arithmetic elsewhere silently breaks every rule that reasons about the
// following seat.
var successors = map[int][]int{
	2: {1, 0},
	3: {2, 0, 1},
	4: {3, 0, 1, 2},
}

// NextSeat returns the seat that acts after the given seat at a table of the
// given size. Panics on an unsupported table size or seat index; both are
// fixed at deal time and cannot occur for a well-formed table.
func NextSeat(seat, seats int) int {
	table, ok := successors[seats]
	if !ok {
		panic(fmt.Sprintf("unsupported table size %d", seats))
	}
	if seat < 0 || seat >= seats {
		panic(fmt.Sprintf("seat %d out of range for %d seats", seat, seats))
	}
	return table[seat]
}
