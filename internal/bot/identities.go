package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// BotIdentity is a pooled bot profile backing a Nakama account.
type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

// Level maps the identity's difficulty string to a strategy level.
func (b BotIdentity) Level() BotLevel {
	return ParseLevel(b.Difficulty)
}

// The pool is loaded once at module init and provisioned once against
// Nakama; after that it is read-only, so the lookups below need no lock.
var (
	identities    []BotIdentity
	pool          map[string]BotIdentity
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities reads the bot profile pool from a JSON file. Repeated calls
// return the outcome of the first load.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("read bot identities: %w", err)
			return
		}
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("parse bot identities: %w", err)
			return
		}
		pool = make(map[string]BotIdentity, len(identities))
		for _, id := range identities {
			if id.UserID != "" {
				pool[id.UserID] = id
			}
		}
	})
	return loadErr
}

// ProvisionBots authenticates each pooled profile against Nakama, creating
// the account on first run, and stamps it with the is_bot metadata clients
// use to badge bot players. Profiles without a device ID are static entries
// that never touch Nakama.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) error {
	provisionOnce.Do(func() {
		for i := range identities {
			id := &identities[i]
			if id.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, id.DeviceID, id.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: authenticate %s: %v", id.Username, err)
				continue
			}
			id.UserID = userID
			id.Username = username

			meta := map[string]interface{}{
				"is_bot":       true,
				"difficulty":   id.Difficulty,
				"avatar_index": id.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, id.Username, meta, id.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: update account %s: %v", userID, err)
			}

			pool[userID] = *id
			logger.Info("ProvisionBots: %s (%s) ready, difficulty %s", id.DisplayName, userID, id.Difficulty)
		}
	})
	return nil
}

// GetBotConfig returns the full identity for a bot user ID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	id, ok := pool[userID]
	return id, ok
}

// GetBotUsername returns the username for a bot ID, or "" for non-bots.
func GetBotUsername(userID string) string {
	return pool[userID].Username
}

// GetBotDisplayName returns the display name for a bot ID, falling back to
// the username.
func GetBotDisplayName(userID string) string {
	id := pool[userID]
	if id.DisplayName == "" {
		return id.Username
	}
	return id.DisplayName
}

// GetBotIdentity returns a pooled identity by index, wrapping around the
// pool size. With no pool loaded it synthesizes a medium-difficulty stand-in
// so lobby auto-fill keeps working.
func GetBotIdentity(index int) BotIdentity {
	if len(identities) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
			Difficulty:  "medium",
		}
	}
	return identities[index%len(identities)]
}

// IsBot reports whether the user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := pool[userID]
	return ok
}

// GetAllBotIDs returns the user IDs of every pooled bot.
func GetAllBotIDs() []string {
	ids := make([]string, 0, len(pool))
	for id := range pool {
		ids = append(ids, id)
	}
	return ids
}
