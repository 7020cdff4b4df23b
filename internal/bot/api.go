package bot

import (
	"lebdeal/internal/domain"
)

// Move represents the decision made by a bot.
type Move struct {
	Pass  bool
	Cards []domain.Card
}

// Action converts the move into a validator action.
func (m Move) Action() domain.Action {
	if m.Pass {
		return domain.PassAction()
	}
	return domain.PlayAction(m.Cards...)
}

// Brain is the interface that all bot strategies implement.
type Brain interface {
	CalculateMove(table domain.TableState, seat int) (Move, error)
}
