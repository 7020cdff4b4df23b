package bot

import (
	"fmt"
)

// BotLevel selects a strategy difficulty.
type BotLevel int

const (
	BotLevelCautious BotLevel = iota
	BotLevelStandard
	BotLevelAggressive
)

// ParseLevel maps an identity difficulty string to a level. Unknown strings
// fall back to the standard level.
func ParseLevel(s string) BotLevel {
	switch s {
	case "easy", "cautious":
		return BotLevelCautious
	case "hard", "aggressive":
		return BotLevelAggressive
	default:
		return BotLevelStandard
	}
}

// NewAgent builds a seat-bound agent for a pooled identity. Unknown IDs get
// the standard strategy under their raw ID.
func NewAgent(userID string, seat int) (*Agent, error) {
	level := BotLevelStandard
	name := userID
	if identity, ok := GetBotConfig(userID); ok {
		level = identity.Level()
		name = identity.DisplayName
	}
	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: userID, Name: name, Seat: seat, Strategy: brain}, nil
}

// NewBrain creates a new bot brain for the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelCautious:
		return &CautiousBot{}, nil
	case BotLevelStandard:
		return &StandardBot{}, nil
	case BotLevelAggressive:
		return &AggressiveBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
