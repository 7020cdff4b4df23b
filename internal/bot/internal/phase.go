package internal

import "lebdeal/internal/domain"

// GamePhase describes the current strategic stage of a match.
type GamePhase int

const (
	// PhaseOpening indicates all seats still hold their full deal.
	PhaseOpening GamePhase = iota
	// PhaseMid indicates no seat has reached the endgame threshold yet.
	PhaseMid
	// PhaseEnd indicates some seat is at or below five cards.
	PhaseEnd
)

const endgameThreshold = 5

// DetectPhase infers the phase from the seats' remaining card counts.
func DetectPhase(table domain.TableState) GamePhase {
	opening := true
	end := false
	active := 0

	for seat := 0; seat < table.Seats; seat++ {
		n := table.RemainingCards(seat)
		if n == 0 {
			end = true
			continue
		}
		active++
		if n != domain.HandSize {
			opening = false
		}
		if n <= endgameThreshold {
			end = true
		}
	}

	if active == 0 {
		return PhaseEnd
	}
	if opening {
		return PhaseOpening
	}
	if end {
		return PhaseEnd
	}
	return PhaseMid
}
