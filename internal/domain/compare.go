package domain

import "errors"

// ErrIncomparable is returned when a caller compares combinations of
// different cardinality or an invalid combination. That is a programming
// error in the caller, not a game outcome; the validator maps size
// mismatches to a DoesNotBeat rejection before ever reaching here.
var ErrIncomparable = errors.New("combinations are not comparable")

// Beats reports whether next strictly beats prev. Five-card combinations
// compare by tier first (straight flush > four of a kind > full house >
// flush > straight); within a tier, and for all smaller combinations, the
// derived comparison key decides (highest rank, then suit).
func Beats(prev, next Combo) (bool, error) {
	if prev.Kind == Invalid || next.Kind == Invalid {
		return false, ErrIncomparable
	}
	if prev.Size() != next.Size() {
		return false, ErrIncomparable
	}
	if prev.Size() == 5 && prev.tier() != next.tier() {
		return next.tier() > prev.tier(), nil
	}
	if prev.Size() < 5 && prev.Kind != next.Kind {
		// 1..3 card combos of equal size always share a kind; classifier
		// output that disagrees indicates corrupted input.
		return false, ErrIncomparable
	}
	return next.Value > prev.Value, nil
}
