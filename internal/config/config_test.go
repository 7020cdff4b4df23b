package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lebdeal/internal/domain"
)

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_config.json")
	body := `{
		"score_limit": 50,
		"penalty_tiers": [
			{"max_cards": 6, "multiplier": 1},
			{"max_cards": 13, "multiplier": 2}
		],
		"auto_pass_seconds": 3,
		"bot_auto_fill_delay_seconds": 7
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("LoadGameConfig: %v", err)
	}

	rules := Rules()
	if rules.ScoreLimit != 50 {
		t.Fatalf("ScoreLimit = %d, want 50", rules.ScoreLimit)
	}
	if len(rules.PenaltyTiers) != 2 || rules.PenaltyTiers[0].MaxCards != 6 {
		t.Fatalf("PenaltyTiers = %+v", rules.PenaltyTiers)
	}
	if got := AutoPassDelay(); got != 3*time.Second {
		t.Fatalf("AutoPassDelay = %v, want 3s", got)
	}
	if got := GetGameConfig().BotAutoFillDelaySeconds; got != 7 {
		t.Fatalf("BotAutoFillDelaySeconds = %d, want 7", got)
	}
	if got := TurnDuration(); got != 0 {
		t.Fatalf("TurnDuration = %v, want 0 when unset", got)
	}

	// The loader is once-only; a second call with a bad path keeps the
	// loaded config.
	if err := LoadGameConfig("does-not-exist.json"); err != nil {
		t.Fatalf("second load returned error: %v", err)
	}
	if Rules().ScoreLimit != 50 {
		t.Fatalf("second load replaced config")
	}
}

func TestRulesDefaultsWithoutConfig(t *testing.T) {
	saved := cfg
	cfg = nil
	defer func() { cfg = saved }()

	if got, want := Rules(), domain.DefaultRules(); got.ScoreLimit != want.ScoreLimit || len(got.PenaltyTiers) != len(want.PenaltyTiers) {
		t.Fatalf("Rules() = %+v, want defaults", got)
	}
	if got := AutoPassDelay(); got != 5*time.Second {
		t.Fatalf("AutoPassDelay = %v, want 5s default", got)
	}
}
