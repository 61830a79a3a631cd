// Package ledger provides an in-process TokenLedger used by the memory
// backend, the preview tooling and tests.
package ledger

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/repository"
)

type balanceKey struct {
	actor domain.Actor
	item  domain.ItemID
}

type approvalKey struct {
	owner    domain.Actor
	operator domain.Actor
}

// Op names passed to a FailureHook.
const (
	OpBurn   = "burn"
	OpMint   = "mint"
	OpCommit = "commit"
)

// FailureHook lets tests inject ledger failures. A non-nil return aborts the call.
type FailureHook func(op string, actor domain.Actor, item domain.ItemID, amount uint64) error

// Memory is a transactional in-memory ledger.
type Memory struct {
	mu        sync.RWMutex
	balances  map[balanceKey]uint64
	approvals map[approvalKey]bool
	denied    map[domain.ItemID]bool
	hook      FailureHook
}

// Option configures a Memory ledger.
type Option func(*Memory)

// WithDeniedMints makes Mint fail with ErrNotAuthorized for items.
func WithDeniedMints(items ...domain.ItemID) Option {
	return func(m *Memory) {
		for _, id := range items {
			m.denied[id] = true
		}
	}
}

// WithFailureHook installs a failure injector.
func WithFailureHook(hook FailureHook) Option {
	return func(m *Memory) { m.hook = hook }
}

// NewMemory creates an empty ledger.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		balances:  make(map[balanceKey]uint64),
		approvals: make(map[approvalKey]bool),
		denied:    make(map[domain.ItemID]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetFailureHook replaces the failure injector.
func (m *Memory) SetFailureHook(hook FailureHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hook = hook
}

func (m *Memory) BeginTx(_ context.Context) (repository.LedgerTx, error) {
	return &memoryTx{ledger: m, pending: make(map[balanceKey]uint64)}, nil
}

func (m *Memory) BalanceOfBatch(_ context.Context, actors []domain.Actor, items []domain.ItemID) ([]uint64, error) {
	if len(actors) != len(items) {
		return nil, fmt.Errorf("%w: %d actors for %d items", domain.ErrInvalidInput, len(actors), len(items))
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]uint64, len(actors))
	for i := range actors {
		out[i] = m.balances[balanceKey{actors[i], items[i]}]
	}
	return out, nil
}

func (m *Memory) IsApprovedForAll(_ context.Context, owner, operator domain.Actor) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.approvals[approvalKey{owner, operator}], nil
}

func (m *Memory) SetApprovalForAll(_ context.Context, owner, operator domain.Actor, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if approved {
		m.approvals[approvalKey{owner, operator}] = true
	} else {
		delete(m.approvals, approvalKey{owner, operator})
	}
	return nil
}

func (m *Memory) Grant(_ context.Context, to domain.Actor, item domain.ItemID, amount uint64) error {
	if amount == 0 {
		return domain.ErrInvalidAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := balanceKey{to, item}
	if m.balances[k]+amount < amount {
		return fmt.Errorf("%w: balance overflow", domain.ErrInvalidAmount)
	}
	m.balances[k] += amount
	return nil
}

// Balance is a convenience single-balance read.
func (m *Memory) Balance(actor domain.Actor, item domain.ItemID) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[balanceKey{actor, item}]
}

// TotalSupply sums every holder's balance of item.
func (m *Memory) TotalSupply(item domain.ItemID) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total uint64
	for k, v := range m.balances {
		if k.item == item {
			total += v
		}
	}
	return total
}

func (m *Memory) fail(op string, actor domain.Actor, item domain.ItemID, amount uint64) error {
	m.mu.RLock()
	hook := m.hook
	m.mu.RUnlock()
	if hook == nil {
		return nil
	}
	return hook(op, actor, item, amount)
}

// memoryTx buffers the new value of every balance it touches.
type memoryTx struct {
	ledger  *Memory
	pending map[balanceKey]uint64
	closed  bool
}

func (tx *memoryTx) balance(k balanceKey) uint64 {
	if v, ok := tx.pending[k]; ok {
		return v
	}
	tx.ledger.mu.RLock()
	defer tx.ledger.mu.RUnlock()
	return tx.ledger.balances[k]
}

func (tx *memoryTx) Burn(_ context.Context, from domain.Actor, item domain.ItemID, amount uint64) error {
	if tx.closed {
		return domain.ErrTxClosed
	}
	if err := tx.ledger.fail(OpBurn, from, item, amount); err != nil {
		return err
	}
	k := balanceKey{from, item}
	have := tx.balance(k)
	if have < amount {
		return fmt.Errorf("%w: %s holds %d of item %d, needs %d", domain.ErrInsufficientBalance, from, have, item, amount)
	}
	tx.pending[k] = have - amount
	return nil
}

func (tx *memoryTx) Mint(_ context.Context, to domain.Actor, item domain.ItemID, amount uint64) error {
	if tx.closed {
		return domain.ErrTxClosed
	}
	tx.ledger.mu.RLock()
	denied := tx.ledger.denied[item]
	tx.ledger.mu.RUnlock()
	if denied {
		return fmt.Errorf("%w: item %d", domain.ErrNotAuthorized, item)
	}
	if err := tx.ledger.fail(OpMint, to, item, amount); err != nil {
		return err
	}
	k := balanceKey{to, item}
	have := tx.balance(k)
	if have+amount < have {
		return fmt.Errorf("%w: balance overflow", domain.ErrSupplyExceeded)
	}
	tx.pending[k] = have + amount
	return nil
}

func (tx *memoryTx) BalanceOf(_ context.Context, actor domain.Actor, item domain.ItemID) (uint64, error) {
	if tx.closed {
		return 0, domain.ErrTxClosed
	}
	return tx.balance(balanceKey{actor, item}), nil
}

func (tx *memoryTx) Commit(_ context.Context) error {
	if tx.closed {
		return domain.ErrTxClosed
	}
	if err := tx.ledger.fail(OpCommit, "", 0, 0); err != nil {
		return err
	}
	tx.ledger.mu.Lock()
	maps.Copy(tx.ledger.balances, tx.pending)
	tx.ledger.mu.Unlock()
	tx.closed = true
	return nil
}

func (tx *memoryTx) Rollback(_ context.Context) error {
	if tx.closed {
		return domain.ErrTxClosed
	}
	tx.pending = nil
	tx.closed = true
	return nil
}
