package nakama

import (
	"context"
	"database/sql"

	"lebdeal/internal/bot"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameDeal, NewMatch); err != nil {
		return err
	}

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	} else if err := bot.ProvisionBots(ctx, nk, logger); err != nil {
		logger.Warn("InitModule: Could not provision bots: %v", err)
	}

	logger.Info("Deal Go module loaded.")
	return nil
}
