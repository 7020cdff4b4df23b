package bot

import (
	"lebdeal/internal/domain"
)

// Agent represents an autonomous bot player bound to a seat.
type Agent struct {
	ID       string
	Name     string
	Seat     int
	Strategy Brain
}

// Play asks the agent to calculate its move for the current table.
func (a *Agent) Play(table domain.TableState) (Move, error) {
	if a.Seat < 0 || a.Seat >= table.Seats {
		return Move{Pass: true}, nil
	}
	move, err := a.Strategy.CalculateMove(table, a.Seat)
	if err != nil {
		return Move{Pass: true}, err
	}
	return move, nil
}
