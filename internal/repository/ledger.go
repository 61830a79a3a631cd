package repository

import (
	"context"

	"github.com/osse101/MawRitual_Go/internal/domain"
)

// Ledger is the external token ledger the orchestrator calls into. It owns
// balances; the engine only burns and mints through it.
type Ledger interface {
	// BeginTx starts an action-scoped transaction
	BeginTx(ctx context.Context) (LedgerTx, error)

	// BalanceOfBatch returns balances for the (actor, item) pairs actors[i], items[i]
	BalanceOfBatch(ctx context.Context, actors []domain.Actor, items []domain.ItemID) ([]uint64, error)

	// IsApprovedForAll reports whether operator may move owner's tokens
	IsApprovedForAll(ctx context.Context, owner, operator domain.Actor) (bool, error)

	// SetApprovalForAll grants or revokes operator's approval over owner's tokens
	SetApprovalForAll(ctx context.Context, owner, operator domain.Actor, approved bool) error

	// Grant credits amount of item to actor outside any ritual (ops tooling, tests)
	Grant(ctx context.Context, to domain.Actor, item domain.ItemID, amount uint64) error
}

// StateStore persists engine state snapshots.
type StateStore interface {
	// LoadState returns the latest snapshot, or nil when none exists
	LoadState(ctx context.Context) (*StateSnapshot, error)

	// SaveState stores a snapshot
	SaveState(ctx context.Context, snapshot *StateSnapshot) error
}
