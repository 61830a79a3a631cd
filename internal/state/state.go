// Package state holds the versioned engine state owned by the ritual orchestrator.
package state

import (
	"fmt"
	"maps"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/odds"
	"github.com/osse101/MawRitual_Go/internal/pool"
)

// SchemaVersion is bumped whenever the persisted layout changes. Readers
// accept every version up to and including this one.
const SchemaVersion = 1

// EngineState is everything the orchestrator mutates. Actions operate on a
// Clone and the clone replaces the live state only after the action commits.
type EngineState struct {
	SchemaVersion int    `json:"schema_version"`
	Revision      uint64 `json:"revision"`

	Nonce   uint64 `json:"nonce"`
	Paused  bool   `json:"paused"`
	Spacing uint64 `json:"cooldown_spacing"`

	// Pools are immutable once built; updates swap the pointer.
	Pools       map[domain.PoolKind]*pool.RewardPool      `json:"pools"`
	Supplies    map[domain.ItemID]domain.SupplyCounter    `json:"supply"`
	Cooldowns   map[domain.Actor]domain.CooldownRecord    `json:"cooldowns"`
	Conversions map[domain.ItemID]domain.ConversionRule   `json:"conversions"`
	Rituals     map[domain.RitualKind]domain.RitualConfig `json:"rituals"`
	Success     odds.Config                               `json:"success"`
}

// New returns an empty state at the current schema version.
func New() *EngineState {
	return &EngineState{
		SchemaVersion: SchemaVersion,
		Spacing:       domain.DefaultCooldownSpacing,
		Pools:         make(map[domain.PoolKind]*pool.RewardPool),
		Supplies:      make(map[domain.ItemID]domain.SupplyCounter),
		Cooldowns:     make(map[domain.Actor]domain.CooldownRecord),
		Conversions:   make(map[domain.ItemID]domain.ConversionRule),
		Rituals:       make(map[domain.RitualKind]domain.RitualConfig),
		Success:       odds.Config{MaxBps: domain.DefaultMaxSuccessBps},
	}
}

// Clone returns a copy whose maps can be mutated without touching s.
func (s *EngineState) Clone() *EngineState {
	c := *s
	c.Pools = maps.Clone(s.Pools)
	c.Supplies = make(map[domain.ItemID]domain.SupplyCounter, len(s.Supplies))
	for id, counter := range s.Supplies {
		if counter.Max != nil {
			limit := *counter.Max
			counter.Max = &limit
		}
		c.Supplies[id] = counter
	}
	c.Cooldowns = maps.Clone(s.Cooldowns)
	c.Conversions = maps.Clone(s.Conversions)
	c.Rituals = make(map[domain.RitualKind]domain.RitualConfig, len(s.Rituals))
	for kind, rc := range s.Rituals {
		rc.TierPools = maps.Clone(rc.TierPools)
		c.Rituals[kind] = rc
	}
	c.Success.Tiers = append([]odds.SuccessTier(nil), s.Success.Tiers...)
	c.Success.Modifiers = append([]domain.SuccessModifier(nil), s.Success.Modifiers...)
	c.Success.Distribution = append(odds.Distribution(nil), s.Success.Distribution...)
	return &c
}

// IncrementNonce advances the sacrifice nonce and returns the new value.
func (s *EngineState) IncrementNonce() uint64 {
	s.Nonce++
	return s.Nonce
}

// LastAction implements cooldown.Store.
func (s *EngineState) LastAction(actor domain.Actor) (domain.CooldownRecord, bool) {
	rec, ok := s.Cooldowns[actor]
	return rec, ok
}

// RecordAction implements cooldown.Store.
func (s *EngineState) RecordAction(actor domain.Actor, height int64) {
	s.Cooldowns[actor] = domain.CooldownRecord{LastActionHeight: height}
}

// CooldownSpacing implements cooldown.Store.
func (s *EngineState) CooldownSpacing() uint64 {
	return s.Spacing
}

// Supply implements supply.Counters. Unknown items are unlimited.
func (s *EngineState) Supply(item domain.ItemID) domain.SupplyCounter {
	return s.Supplies[item]
}

// RecordMint implements supply.Counters.
func (s *EngineState) RecordMint(item domain.ItemID, amount uint64) {
	c := s.Supplies[item]
	c.Minted += amount
	s.Supplies[item] = c
}

// Pool returns the active pool of kind.
func (s *EngineState) Pool(kind domain.PoolKind) (*pool.RewardPool, error) {
	p, ok := s.Pools[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPool, kind)
	}
	return p, nil
}

// Ritual returns the wiring of kind.
func (s *EngineState) Ritual(kind domain.RitualKind) (domain.RitualConfig, error) {
	rc, ok := s.Rituals[kind]
	if !ok {
		return domain.RitualConfig{}, fmt.Errorf("%w: %s", domain.ErrUnknownRitual, kind)
	}
	return rc, nil
}

// Conversion returns the rule consuming input. Zero selects the conversion
// ritual's default input.
func (s *EngineState) Conversion(input domain.ItemID) (domain.ConversionRule, error) {
	if input == 0 {
		rc, err := s.Ritual(domain.RitualConversion)
		if err != nil {
			return domain.ConversionRule{}, err
		}
		input = rc.InputItem
	}
	rule, ok := s.Conversions[input]
	if !ok {
		return domain.ConversionRule{}, fmt.Errorf("%w: no conversion for item %d", domain.ErrInvalidInput, input)
	}
	return rule, nil
}
