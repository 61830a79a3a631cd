package ritual

import (
	"context"
	"errors"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/event"
	"github.com/osse101/MawRitual_Go/internal/logger"
	"github.com/osse101/MawRitual_Go/internal/odds"
	"github.com/osse101/MawRitual_Go/internal/repository"
	"github.com/osse101/MawRitual_Go/internal/state"
)

func (s *service) SetPool(ctx context.Context, kind domain.PoolKind, entries []domain.WeightedEntry) error {
	return s.update(ctx, OpSetPool, map[string]interface{}{"kind": kind, "entries": entries}, func(st *state.EngineState) error {
		return st.SetPool(kind, entries)
	})
}

func (s *service) SetCooldownSpacing(ctx context.Context, blocks uint64) error {
	return s.update(ctx, OpSetCooldownSpacing, map[string]interface{}{"blocks": blocks}, func(st *state.EngineState) error {
		st.SetCooldownSpacing(blocks)
		return nil
	})
}

func (s *service) SetConversionRatio(ctx context.Context, input domain.ItemID, numerator, denominator uint64) error {
	detail := map[string]interface{}{"input": input, "numerator": numerator, "denominator": denominator}
	return s.update(ctx, OpSetConversionRatio, detail, func(st *state.EngineState) error {
		return st.SetConversionRatio(input, numerator, denominator)
	})
}

func (s *service) SetConversionRule(ctx context.Context, rule domain.ConversionRule) error {
	return s.update(ctx, OpSetConversionRule, rule, func(st *state.EngineState) error {
		return st.SetConversionRule(rule)
	})
}

func (s *service) SetSupplyCap(ctx context.Context, item domain.ItemID, limit *uint64) error {
	return s.update(ctx, OpSetSupplyCap, map[string]interface{}{"item": item, "max": limit}, func(st *state.EngineState) error {
		return st.SetSupplyCap(item, limit)
	})
}

func (s *service) SetPaused(ctx context.Context, paused bool) error {
	return s.update(ctx, OpSetPaused, map[string]interface{}{"paused": paused}, func(st *state.EngineState) error {
		st.SetPaused(paused)
		return nil
	})
}

func (s *service) SetSuccessConfig(ctx context.Context, cfg odds.Config) error {
	return s.update(ctx, OpSetSuccessConfig, cfg, func(st *state.EngineState) error {
		return st.SetSuccessConfig(cfg)
	})
}

func (s *service) SetRitual(ctx context.Context, rc domain.RitualConfig) error {
	return s.update(ctx, OpSetRitual, rc, func(st *state.EngineState) error {
		return st.SetRitual(rc)
	})
}

// update applies fn to a copy of the live state and swaps it in only when fn
// and persistence succeed. A rejected update leaves the live state untouched.
func (s *service) update(ctx context.Context, op string, detail interface{}, fn func(*state.EngineState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.live.Clone()
	if err := fn(staged); err != nil {
		return err
	}
	staged.Revision++

	if s.store != nil {
		snapshot, err := repository.NewSnapshot(staged)
		if err != nil {
			return err
		}
		if err := s.store.SaveState(ctx, snapshot); err != nil {
			return err
		}
	}
	s.live = staged

	logger.FromContext(ctx).Info(LogMsgConfigUpdated, "operation", op, "revision", staged.Revision)
	s.publish(ctx, event.NewConfigUpdatedEvent(op, staged.Revision, detail))
	return nil
}

func (s *service) SaveSnapshot(ctx context.Context) error {
	if s.store == nil {
		return errors.New(ErrMsgNoStore)
	}
	live := s.current()
	snapshot, err := repository.NewSnapshot(live)
	if err != nil {
		return err
	}
	if err := s.store.SaveState(ctx, snapshot); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgSnapshotSaved, "revision", live.Revision, "nonce", live.Nonce)
	return nil
}
