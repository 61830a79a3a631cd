package ritual

import (
	"context"
	"fmt"

	"github.com/osse101/MawRitual_Go/internal/logger"
	"github.com/osse101/MawRitual_Go/internal/repository"
	"github.com/osse101/MawRitual_Go/internal/state"
)

// Restore returns the persisted engine state, or genesis when the store holds
// none. A restored state keeps its nonce, supply counters and cooldowns.
func Restore(ctx context.Context, store repository.StateStore, genesis *state.EngineState) (*state.EngineState, error) {
	log := logger.FromContext(ctx)
	if store == nil {
		return genesis, nil
	}

	snapshot, err := store.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load engine state: %w", err)
	}
	if snapshot == nil {
		log.Info(LogMsgStateGenesis, "revision", genesis.Revision)
		return genesis, nil
	}

	restored, err := snapshot.Decode()
	if err != nil {
		return nil, err
	}
	log.Info(LogMsgStateRestored, "revision", restored.Revision, "nonce", restored.Nonce)
	return restored, nil
}
