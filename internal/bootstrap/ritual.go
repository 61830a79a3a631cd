package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/MawRitual_Go/internal/chain"
	"github.com/osse101/MawRitual_Go/internal/config"
	"github.com/osse101/MawRitual_Go/internal/cooldown"
	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/event"
	"github.com/osse101/MawRitual_Go/internal/ritual"
)

// InitializeRitualEngine loads the ritual configuration, restores the last
// persisted state over it and builds the ritual service. The configuration
// file only seeds a fresh deployment; once a snapshot exists the admin
// surface owns the rules.
func InitializeRitualEngine(ctx context.Context, cfg *config.Config, repos *Repositories, publisher event.Bus) (ritual.Service, error) {
	slog.Info(LogMsgLoadingRitualConfig, "path", cfg.RitualConfigPath)
	_, genesis, err := config.LoadRitualState(cfg.RitualConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadRitualConfig, err)
	}

	live, err := ritual.Restore(ctx, repos.StateStore, genesis)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRestoreState, err)
	}

	view, err := chain.NewView(chain.ViewConfig{
		ChainID:       cfg.ChainID,
		BlockInterval: cfg.BlockInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateChainView, err)
	}

	if cfg.DevMode {
		slog.Warn(LogMsgDevModeEnabled)
	}

	svc := ritual.NewService(
		live,
		repos.Ledger,
		repos.StateStore,
		publisher,
		cooldown.NewService(cooldown.Config{DevMode: cfg.DevMode}),
		view,
		ritual.Config{
			Operator:         domain.Actor(cfg.OperatorID),
			PreviewCacheSize: cfg.PreviewCacheSize,
			PreviewCacheTTL:  cfg.PreviewCacheTTL,
		},
	)

	slog.Info(LogMsgRitualEngineReady,
		"revision", live.Revision,
		"nonce", live.Nonce,
		"operator", cfg.OperatorID,
		"chain_id", cfg.ChainID,
		"height", view.Height())

	return svc, nil
}
