// Package ritual is the sacrifice orchestrator. Every ritual kind runs through
// the same state machine:
//
//	Idle -> Validating -> Burning -> Rolling -> Minting -> Emitting -> Done
//
// Validating may end in Rejected with nothing mutated. Burning, Rolling and
// Minting may end in Aborted, in which case the ledger transaction is rolled
// back and the staged engine state (nonce, supply counters, cooldowns) is
// discarded.
package ritual

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/MawRitual_Go/internal/cooldown"
	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/event"
	"github.com/osse101/MawRitual_Go/internal/odds"
	"github.com/osse101/MawRitual_Go/internal/pool"
	"github.com/osse101/MawRitual_Go/internal/repository"
	"github.com/osse101/MawRitual_Go/internal/rng"
	"github.com/osse101/MawRitual_Go/internal/state"
	"github.com/osse101/MawRitual_Go/internal/supply"
)

// Chain exposes the weak entropy of the chain the engine runs against.
type Chain interface {
	// Entropy returns the entropy of the current head
	Entropy() domain.ChainEntropy
	// EntropyAt returns the entropy of an explicit height
	EntropyAt(height int64) domain.ChainEntropy
}

// Service defines the ritual engine interface
type Service interface {
	// Actions
	SacrificeRelics(ctx context.Context, req SacrificeRequest) (*Result, error)
	SacrificeForCosmetic(ctx context.Context, req CosmeticRequest) (*Result, error)
	ConvertItems(ctx context.Context, req ConvertRequest) (*Result, error)

	// Read-only getters
	GetPool(kind domain.PoolKind) (*pool.RewardPool, error)
	GetSuccessConfig(tier string) (*SuccessConfig, error)
	PreviewRoll(kind domain.PoolKind, seed rng.Seed) (domain.ItemID, error)
	PreviewOdds(kind domain.PoolKind) (*OddsPreview, error)
	GetBalances(ctx context.Context, actor domain.Actor, items []domain.ItemID) ([]domain.ItemAmount, error)
	Snapshot() *state.EngineState

	// Admin surface
	SetPool(ctx context.Context, kind domain.PoolKind, entries []domain.WeightedEntry) error
	SetCooldownSpacing(ctx context.Context, blocks uint64) error
	SetConversionRatio(ctx context.Context, input domain.ItemID, numerator, denominator uint64) error
	SetConversionRule(ctx context.Context, rule domain.ConversionRule) error
	SetSupplyCap(ctx context.Context, item domain.ItemID, limit *uint64) error
	SetPaused(ctx context.Context, paused bool) error
	SetSuccessConfig(ctx context.Context, cfg odds.Config) error
	SetRitual(ctx context.Context, rc domain.RitualConfig) error

	// SaveSnapshot persists the live state to the state store
	SaveSnapshot(ctx context.Context) error
}

// Config holds orchestrator settings
type Config struct {
	// Operator is the account the engine burns from actors on behalf of
	Operator domain.Actor

	PreviewCacheSize int
	PreviewCacheTTL  time.Duration
}

// SacrificeRequest burns Amount of the plain ritual's input item.
// Height nil means the current chain head.
type SacrificeRequest struct {
	Actor  domain.Actor
	Amount uint64
	Height *int64
}

// CosmeticRequest burns PrimaryAmount of the cosmetic input and optionally
// BonusAmount of the bonus item.
type CosmeticRequest struct {
	Actor         domain.Actor
	PrimaryAmount uint64
	BonusAmount   uint64
	Height        *int64
}

// ConvertRequest exchanges Amount of InputItem by its conversion rule. Zero
// InputItem selects the conversion ritual's default input.
type ConvertRequest struct {
	Actor     domain.Actor
	InputItem domain.ItemID
	Amount    uint64
	Height    *int64
}

// Result describes a committed action
type Result struct {
	ActionID   string              `json:"action_id"`
	Kind       domain.RitualKind   `json:"kind"`
	Actor      domain.Actor        `json:"actor"`
	Height     int64               `json:"height"`
	Burned     []domain.ItemAmount `json:"burned"`
	Reward     supply.MintResult   `json:"reward"`
	Success    *bool               `json:"success,omitempty"`
	SuccessBps *uint32             `json:"success_bps,omitempty"`
	Tier       domain.Tier         `json:"tier,omitempty"`
	Draws      []rng.Draw          `json:"draws"`
}

type service struct {
	// mu serializes actions and admin updates. Readers take the read lock
	// and only ever see a committed state.
	mu   sync.RWMutex
	live *state.EngineState

	ledger   repository.Ledger
	store    repository.StateStore
	bus      event.Bus
	cooldown cooldown.Service
	chain    Chain
	operator domain.Actor

	previews *expirable.LRU[string, *OddsPreview]
}

// NewService creates the orchestrator around an already restored state.
// store may be nil, in which case state lives only in memory.
func NewService(
	live *state.EngineState,
	ledger repository.Ledger,
	store repository.StateStore,
	bus event.Bus,
	cooldownSvc cooldown.Service,
	chain Chain,
	cfg Config,
) Service {
	size := cfg.PreviewCacheSize
	if size <= 0 {
		size = DefaultPreviewCacheSize
	}
	ttl := cfg.PreviewCacheTTL
	if ttl <= 0 {
		ttl = DefaultPreviewCacheTTL
	}
	return &service{
		live:     live,
		ledger:   ledger,
		store:    store,
		bus:      bus,
		cooldown: cooldownSvc,
		chain:    chain,
		operator: cfg.Operator,
		previews: expirable.NewLRU[string, *OddsPreview](size, nil, ttl),
	}
}

func (s *service) entropy(height *int64) domain.ChainEntropy {
	if height != nil {
		return s.chain.EntropyAt(*height)
	}
	return s.chain.Entropy()
}

func (s *service) current() *state.EngineState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}
