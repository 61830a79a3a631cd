package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/repository"
)

// LedgerSeed lists opening balances for local and staging ledgers.
//
//	actors:
//	  - actor: alice
//	    approve_operator: true
//	    balances: {1: 10, 2: 3}
type LedgerSeed struct {
	Actors []ActorSeed `yaml:"actors"`
}

// ActorSeed is one actor's opening position
type ActorSeed struct {
	Actor           domain.Actor             `yaml:"actor"`
	ApproveOperator bool                     `yaml:"approve_operator"`
	Balances        map[domain.ItemID]uint64 `yaml:"balances"`
}

// LoadLedgerSeed reads a seed file
func LoadLedgerSeed(path string) (*LedgerSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger seed %s: %w", path, err)
	}
	var seed LedgerSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse ledger seed %s: %w", path, err)
	}
	for i, a := range seed.Actors {
		if a.Actor == "" {
			return nil, fmt.Errorf("%w: seed entry %d has no actor", domain.ErrInvalidInput, i)
		}
	}
	return &seed, nil
}

// SeedLedger grants the seed balances and operator approvals. Grants add to
// existing balances, so seeding a persistent ledger twice doubles it.
func SeedLedger(ctx context.Context, ledger repository.Ledger, seed *LedgerSeed, operator domain.Actor) error {
	grants := 0
	for _, a := range seed.Actors {
		for item, amount := range a.Balances {
			if amount == 0 {
				continue
			}
			if err := ledger.Grant(ctx, a.Actor, item, amount); err != nil {
				return fmt.Errorf("%s: grant %d of item %d to %s: %w", ErrMsgFailedSeedLedger, amount, item, a.Actor, err)
			}
			grants++
		}
		if a.ApproveOperator {
			if err := ledger.SetApprovalForAll(ctx, a.Actor, operator, true); err != nil {
				return fmt.Errorf("%s: approve %s: %w", ErrMsgFailedSeedLedger, a.Actor, err)
			}
		}
	}
	slog.Info(LogMsgLedgerSeeded, "actors", len(seed.Actors), "grants", grants)
	return nil
}
