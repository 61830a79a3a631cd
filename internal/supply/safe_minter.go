// Package supply guards reward mints against sold-out or unauthorized targets.
//
// SafeMint is the single place where a failed mint is caught and substituted
// with another item. A supply or authorization failure on the target never
// escapes this package; every other ledger failure does.
package supply

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/logger"
)

// Minter is the mint half of a ledger transaction.
type Minter interface {
	Mint(ctx context.Context, to domain.Actor, item domain.ItemID, amount uint64) error
}

// Counters is the engine's per-item supply table.
type Counters interface {
	Supply(item domain.ItemID) domain.SupplyCounter
	RecordMint(item domain.ItemID, amount uint64)
}

// MintResult reports what was actually minted.
type MintResult struct {
	Item         domain.ItemID `json:"item_id"`
	Amount       uint64        `json:"amount"`
	Requested    domain.ItemID `json:"requested"`
	FallbackUsed bool          `json:"fallback_used"`
	// Reason is the error that caused the substitution.
	Reason error `json:"-"`
}

// SafeMinter wraps a ledger transaction and the supply table of one action.
type SafeMinter struct {
	ledger   Minter
	counters Counters
}

// NewSafeMinter creates a guard bound to ledger and counters.
func NewSafeMinter(ledger Minter, counters Counters) *SafeMinter {
	return &SafeMinter{ledger: ledger, counters: counters}
}

// SafeMint mints amount of target to actor. When target is over its cap or the
// ledger refuses it with ErrSupplyExceeded or ErrNotAuthorized, amount of
// fallback is minted instead. A fallback failure is returned.
func (m *SafeMinter) SafeMint(ctx context.Context, to domain.Actor, target domain.ItemID, amount uint64, fallback domain.ItemID) (MintResult, error) {
	reason := m.tryMint(ctx, to, target, amount)
	if reason == nil {
		return MintResult{Item: target, Amount: amount, Requested: target}, nil
	}
	if !substitutable(reason) {
		return MintResult{}, reason
	}

	logger.FromContext(ctx).Warn(LogMsgFallbackMint,
		"actor", to, "requested", target, "fallback", fallback, "amount", amount, "reason", reason)

	if err := m.tryMint(ctx, to, fallback, amount); err != nil {
		return MintResult{}, fmt.Errorf(ErrMsgFallbackMintFailed, fallback, err)
	}
	return MintResult{
		Item:         fallback,
		Amount:       amount,
		Requested:    target,
		FallbackUsed: true,
		Reason:       reason,
	}, nil
}

// tryMint checks the cap, calls the ledger and records the mint on success.
func (m *SafeMinter) tryMint(ctx context.Context, to domain.Actor, item domain.ItemID, amount uint64) error {
	counter := m.counters.Supply(item)
	if !counter.CanMint(amount) {
		remaining, _ := counter.Remaining()
		return fmt.Errorf(ErrMsgCapReached, domain.ErrSupplyExceeded, item, amount, remaining)
	}
	if err := m.ledger.Mint(ctx, to, item, amount); err != nil {
		return err
	}
	m.counters.RecordMint(item, amount)
	return nil
}

func substitutable(err error) bool {
	return errors.Is(err, domain.ErrSupplyExceeded) || errors.Is(err, domain.ErrNotAuthorized)
}
