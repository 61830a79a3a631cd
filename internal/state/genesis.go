package state

import (
	"fmt"
	"sort"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/odds"
)

// Genesis is the declarative ritual configuration loaded at first boot.
type Genesis struct {
	CooldownSpacing *uint64                                    `json:"cooldown_spacing,omitempty" yaml:"cooldown_spacing"`
	Pools           map[domain.PoolKind][]domain.WeightedEntry `json:"pools" yaml:"pools"`
	SupplyCaps      map[domain.ItemID]uint64                   `json:"supply_caps,omitempty" yaml:"supply_caps"`
	Conversions     []domain.ConversionRule                    `json:"conversions,omitempty" yaml:"conversions"`
	Success         odds.Config                                `json:"success" yaml:"success"`
	Rituals         []domain.RitualConfig                      `json:"rituals" yaml:"rituals"`
}

// FromGenesis builds a state through the same setters the admin surface uses.
func FromGenesis(g Genesis) (*EngineState, error) {
	s := New()
	if g.CooldownSpacing != nil {
		s.SetCooldownSpacing(*g.CooldownSpacing)
	}

	kinds := make([]domain.PoolKind, 0, len(g.Pools))
	for kind := range g.Pools {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		if err := s.SetPool(kind, g.Pools[kind]); err != nil {
			return nil, fmt.Errorf("pool %s: %w", kind, err)
		}
	}

	for item, limit := range g.SupplyCaps {
		if err := s.SetSupplyCap(item, &limit); err != nil {
			return nil, err
		}
	}
	for _, rule := range g.Conversions {
		if err := s.SetConversionRule(rule); err != nil {
			return nil, fmt.Errorf("conversion %d: %w", rule.Input, err)
		}
	}
	if len(g.Success.Tiers) > 0 {
		if err := s.SetSuccessConfig(g.Success); err != nil {
			return nil, fmt.Errorf("success config: %w", err)
		}
	}
	for _, rc := range g.Rituals {
		if err := s.SetRitual(rc); err != nil {
			return nil, fmt.Errorf("ritual %s: %w", rc.Kind, err)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
