package state

import (
	"fmt"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/odds"
	"github.com/osse101/MawRitual_Go/internal/pool"
)

// SetPool atomically replaces the pool of kind. A rejected update leaves the
// previous pool in place.
func (s *EngineState) SetPool(kind domain.PoolKind, entries []domain.WeightedEntry) error {
	if kind == "" {
		return fmt.Errorf("%w: empty pool kind", domain.ErrInvalidInput)
	}
	var version uint64 = 1
	if old, ok := s.Pools[kind]; ok {
		version = old.Version + 1
	}
	p, err := pool.New(kind, version, entries)
	if err != nil {
		return err
	}
	s.Pools[kind] = p
	return nil
}

// SetCooldownSpacing sets the minimum block spacing between actions of one actor.
func (s *EngineState) SetCooldownSpacing(blocks uint64) {
	s.Spacing = blocks
}

// SetConversionRatio updates the ratio of the rule consuming input. Zero
// selects the conversion ritual's default input.
func (s *EngineState) SetConversionRatio(input domain.ItemID, numerator, denominator uint64) error {
	rule, err := s.Conversion(input)
	if err != nil {
		return err
	}
	rule.Numerator = numerator
	rule.Denominator = denominator
	return s.SetConversionRule(rule)
}

// SetConversionRule installs or replaces the rule keyed by its input item.
func (s *EngineState) SetConversionRule(rule domain.ConversionRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	if rule.Input == 0 || rule.Output == 0 || rule.Fallback == 0 {
		return fmt.Errorf("%w: conversion items must be non-zero", domain.ErrInvalidInput)
	}
	if rule.Input == rule.Output {
		return fmt.Errorf("%w: conversion input equals output", domain.ErrInvalidRatio)
	}
	s.Conversions[rule.Input] = rule
	return nil
}

// SetSupplyCap sets or clears (limit == nil) the cap of item. A cap below the
// already minted amount is rejected.
func (s *EngineState) SetSupplyCap(item domain.ItemID, limit *uint64) error {
	c := s.Supplies[item]
	if limit != nil && *limit < c.Minted {
		return fmt.Errorf("%w: cap %d below minted %d for item %d", domain.ErrInvalidInput, *limit, c.Minted, item)
	}
	if limit != nil {
		capped := *limit
		c.Max = &capped
	} else {
		c.Max = nil
	}
	s.Supplies[item] = c
	return nil
}

// SetPaused toggles the global pause switch.
func (s *EngineState) SetPaused(paused bool) {
	s.Paused = paused
}

// SetSuccessConfig replaces the success calculator configuration. The update
// is rejected when an installed ritual can no longer run against cfg.
func (s *EngineState) SetSuccessConfig(cfg odds.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	prev := s.Success
	s.Success = cfg
	for _, rc := range s.Rituals {
		if err := s.validateRitual(rc); err != nil {
			s.Success = prev
			return err
		}
	}
	return nil
}

// SetRitual installs the wiring of one ritual kind. Referenced pools must exist.
func (s *EngineState) SetRitual(rc domain.RitualConfig) error {
	if err := s.validateRitual(rc); err != nil {
		return err
	}
	if rc.RewardAmount == 0 {
		rc.RewardAmount = 1
	}
	s.Rituals[rc.Kind] = rc
	return nil
}

func (s *EngineState) validateRitual(rc domain.RitualConfig) error {
	if !rc.Kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownRitual, rc.Kind)
	}
	if rc.InputItem == 0 {
		return fmt.Errorf("%w: ritual %s has no input item", domain.ErrInvalidInput, rc.Kind)
	}

	switch rc.Kind {
	case domain.RitualConversion:
		if _, ok := s.Conversions[rc.InputItem]; !ok {
			return fmt.Errorf("%w: ritual %s input %d has no conversion rule", domain.ErrInvalidRatio, rc.Kind, rc.InputItem)
		}
		return nil
	case domain.RitualCosmetic:
		if rc.ConsolationItem == 0 {
			return fmt.Errorf("%w: ritual %s has no consolation item", domain.ErrInvalidInput, rc.Kind)
		}
		if len(s.Success.Tiers) == 0 {
			return fmt.Errorf("%w: ritual %s needs success tiers", domain.ErrInvalidOdds, rc.Kind)
		}
	}

	if rc.FallbackItem == 0 {
		return fmt.Errorf("%w: ritual %s has no fallback item", domain.ErrInvalidInput, rc.Kind)
	}
	if rc.Pool != "" || rc.Kind != domain.RitualCosmetic || len(rc.TierPools) == 0 {
		if _, err := s.Pool(rc.Pool); err != nil {
			return err
		}
	}
	if rc.Kind != domain.RitualCosmetic || len(rc.TierPools) == 0 {
		return nil
	}

	for tier, kind := range rc.TierPools {
		if _, err := s.Pool(kind); err != nil {
			return fmt.Errorf("tier %s: %w", tier, err)
		}
	}
	if len(s.Success.Distribution) == 0 {
		return fmt.Errorf("%w: ritual %s uses tier pools without a tier distribution", domain.ErrInvalidOdds, rc.Kind)
	}
	// Unmapped tiers fall back to rc.Pool.
	if rc.Pool == "" {
		for _, tw := range s.Success.Distribution {
			if _, ok := rc.TierPools[tw.Tier]; !ok {
				return fmt.Errorf("%w: ritual %s has no pool for tier %s", domain.ErrUnknownPool, rc.Kind, tw.Tier)
			}
		}
	}
	return nil
}

// Validate checks a loaded or restored state end to end.
func (s *EngineState) Validate() error {
	if s.SchemaVersion < 1 || s.SchemaVersion > SchemaVersion {
		return fmt.Errorf("%w: unsupported schema version %d", domain.ErrInvalidInput, s.SchemaVersion)
	}
	for kind, p := range s.Pools {
		if p == nil || p.Kind != kind || p.TotalWeight == 0 {
			return fmt.Errorf("%w: %s", domain.ErrEmptyPool, kind)
		}
	}
	for id, c := range s.Supplies {
		if c.Max != nil && c.Minted > *c.Max {
			return fmt.Errorf("%w: item %d minted %d over cap %d", domain.ErrSupplyExceeded, id, c.Minted, *c.Max)
		}
	}
	for input, rule := range s.Conversions {
		if rule.Input != input {
			return fmt.Errorf("%w: rule keyed %d consumes %d", domain.ErrInvalidRatio, input, rule.Input)
		}
		if err := rule.Validate(); err != nil {
			return err
		}
	}
	if err := s.Success.Validate(); err != nil && s.hasRitual(domain.RitualCosmetic) {
		return err
	}
	for kind, rc := range s.Rituals {
		if rc.Kind != kind {
			return fmt.Errorf("%w: ritual keyed %s declares %s", domain.ErrUnknownRitual, kind, rc.Kind)
		}
		if err := s.validateRitual(rc); err != nil {
			return err
		}
	}
	return nil
}

func (s *EngineState) hasRitual(kind domain.RitualKind) bool {
	_, ok := s.Rituals[kind]
	return ok
}
