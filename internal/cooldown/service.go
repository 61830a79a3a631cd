package cooldown

import (
	"context"
	"fmt"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/logger"
)

// Store is the per-actor cooldown table. The engine state implements it, so
// records written against a staged copy are discarded with the copy.
type Store interface {
	LastAction(actor domain.Actor) (domain.CooldownRecord, bool)
	RecordAction(actor domain.Actor, height int64)
	CooldownSpacing() uint64
}

// Service gates actions by chain height.
type Service interface {
	// CheckCooldown returns ErrTooSoon if actor may not act at height.
	CheckCooldown(ctx context.Context, store Store, actor domain.Actor, height int64) error

	// EnforceCooldown checks the cooldown and runs fn; the action is recorded
	// at height only when fn succeeds.
	EnforceCooldown(ctx context.Context, store Store, actor domain.Actor, height int64, fn func() error) error

	// GetLastAction returns the height of actor's last recorded action.
	GetLastAction(store Store, actor domain.Actor) (int64, bool)
}

// ErrTooSoon is returned when an actor acts before the spacing has elapsed.
type ErrTooSoon struct {
	Actor      domain.Actor
	LastHeight int64
	Remaining  uint64
}

func (e ErrTooSoon) Error() string {
	return fmt.Sprintf(ErrFmtTooSoon, e.Actor, e.Remaining, e.LastHeight)
}

// Is allows errors.Is() to match both ErrTooSoon and domain.ErrTooSoon
func (e ErrTooSoon) Is(target error) bool {
	if target == domain.ErrTooSoon {
		return true
	}
	_, ok := target.(ErrTooSoon)
	return ok
}

// Config holds cooldown service configuration
type Config struct {
	// DevMode skips the spacing check; successful actions are still recorded
	DevMode bool
}

type gate struct {
	config Config
}

// NewService creates a height-based cooldown service
func NewService(config Config) Service {
	return &gate{config: config}
}

func (g *gate) CheckCooldown(ctx context.Context, store Store, actor domain.Actor, height int64) error {
	if g.config.DevMode {
		return nil
	}

	rec, ok := store.LastAction(actor)
	if !ok {
		return nil
	}

	blocked, remaining := checkSpacing(rec.LastActionHeight, height, store.CooldownSpacing())
	if blocked {
		return ErrTooSoon{Actor: actor, LastHeight: rec.LastActionHeight, Remaining: remaining}
	}
	return nil
}

func (g *gate) EnforceCooldown(ctx context.Context, store Store, actor domain.Actor, height int64, fn func() error) error {
	log := logger.FromContext(ctx)

	if err := g.CheckCooldown(ctx, store, actor, height); err != nil {
		log.Debug(LogMsgCooldownRejected, "actor", actor, "height", height)
		return err
	}
	if g.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "actor", actor)
	}

	if err := fn(); err != nil {
		return err
	}

	store.RecordAction(actor, height)
	log.Debug(LogMsgCooldownRecorded, "actor", actor, "height", height)
	return nil
}

func (g *gate) GetLastAction(store Store, actor domain.Actor) (int64, bool) {
	rec, ok := store.LastAction(actor)
	return rec.LastActionHeight, ok
}

// checkSpacing reports whether height is inside [last, last+spacing) and how
// many blocks remain. Heights behind the last action are treated as blocked.
func checkSpacing(last, height int64, spacing uint64) (bool, uint64) {
	if height < last {
		return true, uint64(last-height) + spacing
	}
	elapsed := uint64(height - last)
	if elapsed < spacing {
		return true, spacing - elapsed
	}
	return false, 0
}
