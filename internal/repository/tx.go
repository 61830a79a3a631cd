package repository

import (
	"context"

	"github.com/osse101/MawRitual_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// LedgerTx is one action's view of the token ledger. Burns and mints are
// visible inside the transaction immediately and become durable on Commit.
// Burn and Mint may be called any number of times per transaction.
type LedgerTx interface {
	Tx

	// Burn fails with domain.ErrInsufficientBalance when from holds less than amount
	Burn(ctx context.Context, from domain.Actor, item domain.ItemID, amount uint64) error

	// Mint fails with domain.ErrNotAuthorized for items this engine may not mint
	// and domain.ErrSupplyExceeded when the ledger's own cap is reached
	Mint(ctx context.Context, to domain.Actor, item domain.ItemID, amount uint64) error

	// BalanceOf reads a balance including this transaction's changes
	BalanceOf(ctx context.Context, actor domain.Actor, item domain.ItemID) (uint64, error)
}

// StateTx is implemented by ledger transactions that can persist the engine
// state atomically with the balance changes.
type StateTx interface {
	SaveState(ctx context.Context, snapshot *StateSnapshot) error
}
