package ritual

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/metrics"
	"github.com/osse101/MawRitual_Go/internal/odds"
	"github.com/osse101/MawRitual_Go/internal/pool"
	"github.com/osse101/MawRitual_Go/internal/rng"
	"github.com/osse101/MawRitual_Go/internal/state"
)

// SuccessConfig is the read-only view of one success tier.
type SuccessConfig struct {
	Tier         string                   `json:"tier"`
	MinAmount    uint64                   `json:"min_amount"`
	BaseBps      uint32                   `json:"base_bps"`
	MaxBps       uint32                   `json:"max_bps"`
	Modifiers    []domain.SuccessModifier `json:"modifiers"`
	Distribution odds.Distribution        `json:"distribution,omitempty"`
}

// OddsPreview is the display probability of every entry of a pool.
type OddsPreview struct {
	Kind        domain.PoolKind `json:"kind"`
	DisplayName string          `json:"display_name"`
	Version     uint64          `json:"version"`
	TotalWeight uint64          `json:"total_weight"`
	Odds        []pool.ItemOdds `json:"odds"`
}

var titleCaser = cases.Title(language.English)

// DisplayName turns a pool kind like "cosmetic_rare" into "Cosmetic Rare".
func DisplayName(kind domain.PoolKind) string {
	return titleCaser.String(strings.ReplaceAll(string(kind), "_", " "))
}

func (s *service) GetPool(kind domain.PoolKind) (*pool.RewardPool, error) {
	return s.current().Pool(kind)
}

func (s *service) GetSuccessConfig(tier string) (*SuccessConfig, error) {
	cfg := s.current().Success
	t, ok := cfg.Tier(tier)
	if !ok {
		return nil, fmt.Errorf(ErrMsgUnknownTier, domain.ErrInvalidInput, tier)
	}
	return &SuccessConfig{
		Tier:         t.Name,
		MinAmount:    t.MinAmount,
		BaseBps:      t.BaseBps,
		MaxBps:       cfg.MaxBps,
		Modifiers:    append([]domain.SuccessModifier(nil), cfg.Modifiers...),
		Distribution: append(odds.Distribution(nil), cfg.Distribution...),
	}, nil
}

// PreviewRoll returns exactly what a reward draw of seed selects from the pool.
func (s *service) PreviewRoll(kind domain.PoolKind, seed rng.Seed) (domain.ItemID, error) {
	p, err := s.current().Pool(kind)
	if err != nil {
		return 0, err
	}
	return pool.Preview(p, seed), nil
}

func (s *service) PreviewOdds(kind domain.PoolKind) (*OddsPreview, error) {
	p, err := s.current().Pool(kind)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s@%d", p.Kind, p.Version)
	if cached, ok := s.previews.Get(key); ok {
		metrics.PreviewCacheLookups.WithLabelValues(metrics.CacheHit).Inc()
		return cached, nil
	}
	metrics.PreviewCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()

	preview := &OddsPreview{
		Kind:        p.Kind,
		DisplayName: DisplayName(p.Kind),
		Version:     p.Version,
		TotalWeight: p.TotalWeight,
		Odds:        pool.Odds(p),
	}
	s.previews.Add(key, preview)
	return preview, nil
}

func (s *service) GetBalances(ctx context.Context, actor domain.Actor, items []domain.ItemID) ([]domain.ItemAmount, error) {
	if actor == "" {
		return nil, fmt.Errorf(ErrMsgEmptyActor, domain.ErrInvalidInput)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf(ErrMsgBalanceQueryItems, domain.ErrInvalidInput)
	}

	actors := make([]domain.Actor, len(items))
	for i := range actors {
		actors[i] = actor
	}
	balances, err := s.ledger.BalanceOfBatch(ctx, actors, items)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBalanceLookup, err)
	}

	out := make([]domain.ItemAmount, len(items))
	for i, item := range items {
		out[i] = domain.ItemAmount{ItemID: item, Amount: balances[i]}
	}
	return out, nil
}

// Snapshot returns a copy of the committed state.
func (s *service) Snapshot() *state.EngineState {
	return s.current().Clone()
}
