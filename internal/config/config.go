package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"lebdeal/internal/domain"
)

type PenaltyTier struct {
	MaxCards   int   `json:"max_cards"`
	Multiplier int32 `json:"multiplier"`
}

type GameConfig struct {
	ScoreLimit          int32         `json:"score_limit"`
	PenaltyTiers        []PenaltyTier `json:"penalty_tiers"`
	AutoPassSeconds     int           `json:"auto_pass_seconds"`
	TurnDurationSeconds int           `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds a solo human lobby
	// waits before bots take the empty seats.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	BotMinDelaySeconds      int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds      int `json:"bot_max_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// Rules converts the loaded configuration to scoring rules, falling back to
// the standard table when the config is missing or partial.
func Rules() domain.Rules {
	if cfg == nil || len(cfg.PenaltyTiers) == 0 {
		return domain.DefaultRules()
	}
	rules := domain.Rules{ScoreLimit: cfg.ScoreLimit}
	if rules.ScoreLimit <= 0 {
		rules.ScoreLimit = domain.DefaultRules().ScoreLimit
	}
	for _, tier := range cfg.PenaltyTiers {
		rules.PenaltyTiers = append(rules.PenaltyTiers, domain.PenaltyTier{
			MaxCards:   tier.MaxCards,
			Multiplier: tier.Multiplier,
		})
	}
	return rules
}

// AutoPassDelay returns the countdown granted to opponents after an
// unbeatable play before their passes are submitted for them.
func AutoPassDelay() time.Duration {
	if cfg == nil || cfg.AutoPassSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(cfg.AutoPassSeconds) * time.Second
}

// TurnDuration returns how long a seat may hold the turn before the runtime
// intervenes. Zero means no limit.
func TurnDuration() time.Duration {
	if cfg == nil || cfg.TurnDurationSeconds <= 0 {
		return 0
	}
	return time.Duration(cfg.TurnDurationSeconds) * time.Second
}
