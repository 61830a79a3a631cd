package ritual

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/logger"
	"github.com/osse101/MawRitual_Go/internal/metrics"
	"github.com/osse101/MawRitual_Go/internal/odds"
	"github.com/osse101/MawRitual_Go/internal/repository"
	"github.com/osse101/MawRitual_Go/internal/rng"
	"github.com/osse101/MawRitual_Go/internal/state"
	"github.com/osse101/MawRitual_Go/internal/supply"
)

// mintSpec is what the rolling phase decided to mint.
type mintSpec struct {
	item     domain.ItemID
	amount   uint64
	fallback domain.ItemID
}

// rollFunc runs in PhaseRolling against the staged state.
type rollFunc func(ctx context.Context, a *action) (mintSpec, error)

// prepareFunc validates a request against the live state and returns the
// inputs to burn and the roll to run. It must not mutate anything.
type prepareFunc func(ctx context.Context, live *state.EngineState, rc domain.RitualConfig) ([]domain.ItemAmount, rollFunc, error)

// action is the working set of one ritual while it moves through the phases.
type action struct {
	kind   domain.RitualKind
	actor  domain.Actor
	amount uint64
	phase  Phase

	rc     domain.RitualConfig
	staged *state.EngineState
	source *rng.Source
	result *Result
}

func (a *action) advance(ctx context.Context, next Phase) {
	logger.FromContext(ctx).Debug(LogMsgPhaseTransition,
		"kind", a.kind, "from", a.phase, "to", next)
	a.phase = next
}

// draw takes the next seed and records it on the result.
func (a *action) draw(purpose string) rng.Seed {
	d := a.source.NextSeed(domain.ActionContext{
		Actor:   a.actor,
		Kind:    a.kind,
		Amount:  a.amount,
		Purpose: purpose,
	})
	a.result.Draws = append(a.result.Draws, d)
	return d.Seed
}

// SacrificeRelics burns req.Amount of the plain ritual's input and mints one
// draw from its pool.
func (s *service) SacrificeRelics(ctx context.Context, req SacrificeRequest) (*Result, error) {
	prepare := func(_ context.Context, _ *state.EngineState, rc domain.RitualConfig) ([]domain.ItemAmount, rollFunc, error) {
		if err := checkAmount(req.Amount, rc); err != nil {
			return nil, nil, err
		}
		burns := []domain.ItemAmount{{ItemID: rc.InputItem, Amount: req.Amount}}
		return burns, rollPool, nil
	}
	return s.execute(ctx, domain.RitualPlainRelic, req.Actor, req.Amount, req.Height, prepare)
}

// SacrificeForCosmetic burns the primary input (and the bonus when the ritual
// consumes it), flips a weighted coin at the computed success rate and mints
// a cosmetic on success or the consolation item on failure.
func (s *service) SacrificeForCosmetic(ctx context.Context, req CosmeticRequest) (*Result, error) {
	prepare := func(ctx context.Context, live *state.EngineState, rc domain.RitualConfig) ([]domain.ItemAmount, rollFunc, error) {
		if err := checkAmount(req.PrimaryAmount, rc); err != nil {
			return nil, nil, err
		}
		tier, ok := live.Success.TierFor(req.PrimaryAmount)
		if !ok {
			return nil, nil, fmt.Errorf(ErrMsgNoTier, domain.ErrInvalidAmount, req.PrimaryAmount)
		}

		consumed := []domain.ItemAmount{{ItemID: rc.InputItem, Amount: req.PrimaryAmount}}
		burns := []domain.ItemAmount{consumed[0]}
		if req.BonusAmount > 0 {
			if rc.BonusItem == 0 {
				return nil, nil, fmt.Errorf(ErrMsgNoBonusItem, domain.ErrInvalidInput, rc.Kind)
			}
			bonus := domain.ItemAmount{ItemID: rc.BonusItem, Amount: req.BonusAmount}
			consumed = append(consumed, bonus)
			if rc.ConsumeBonus {
				burns = append(burns, bonus)
			} else if err := s.requireHeld(ctx, req.Actor, bonus); err != nil {
				return nil, nil, err
			}
		}

		roll := func(_ context.Context, a *action) (mintSpec, error) {
			return rollCosmetic(a, tier, consumed)
		}
		return burns, roll, nil
	}
	return s.execute(ctx, domain.RitualCosmetic, req.Actor, req.PrimaryAmount, req.Height, prepare)
}

// ConvertItems exchanges req.Amount of the input item at the rule's fixed
// ratio. Amounts that are not an exact multiple of the denominator are rejected.
func (s *service) ConvertItems(ctx context.Context, req ConvertRequest) (*Result, error) {
	prepare := func(_ context.Context, live *state.EngineState, rc domain.RitualConfig) ([]domain.ItemAmount, rollFunc, error) {
		if err := checkAmount(req.Amount, rc); err != nil {
			return nil, nil, err
		}
		rule, err := live.Conversion(req.InputItem)
		if err != nil {
			return nil, nil, err
		}
		out, err := rule.OutputFor(req.Amount)
		if err != nil {
			return nil, nil, err
		}

		burns := []domain.ItemAmount{{ItemID: rule.Input, Amount: req.Amount}}
		roll := func(_ context.Context, _ *action) (mintSpec, error) {
			return mintSpec{item: rule.Output, amount: out, fallback: rule.Fallback}, nil
		}
		return burns, roll, nil
	}
	return s.execute(ctx, domain.RitualConversion, req.Actor, req.Amount, req.Height, prepare)
}

func checkAmount(amount uint64, rc domain.RitualConfig) error {
	if amount == 0 {
		return domain.ErrInvalidAmount
	}
	if rc.MaxAmount > 0 && amount > rc.MaxAmount {
		return fmt.Errorf(ErrMsgAmountOverMax, domain.ErrInvalidAmount, amount, rc.MaxAmount)
	}
	return nil
}

func (s *service) requireHeld(ctx context.Context, actor domain.Actor, want domain.ItemAmount) error {
	balances, err := s.ledger.BalanceOfBatch(ctx, []domain.Actor{actor}, []domain.ItemID{want.ItemID})
	if err != nil {
		return fmt.Errorf(ErrMsgBalanceLookup, err)
	}
	if balances[0] < want.Amount {
		return fmt.Errorf(ErrMsgBonusNotHeld, domain.ErrInsufficientBalance, want.ItemID, want.Amount, balances[0])
	}
	return nil
}

// rollPool draws one item from the ritual's pool.
func rollPool(_ context.Context, a *action) (mintSpec, error) {
	p, err := a.staged.Pool(a.rc.Pool)
	if err != nil {
		return mintSpec{}, err
	}
	item := p.Select(a.draw(PurposeReward))
	return mintSpec{item: item, amount: a.rc.RewardAmount, fallback: a.rc.FallbackItem}, nil
}

func rollCosmetic(a *action, tier odds.SuccessTier, consumed []domain.ItemAmount) (mintSpec, error) {
	cfg := a.staged.Success
	contributions := cfg.Contributions(consumed)

	bps := odds.ComputeBps(tier.BaseBps, contributions, cfg.MaxBps)
	success := a.draw(PurposeSuccess).Hit(bps)
	a.result.SuccessBps = &bps
	a.result.Success = &success

	if !success {
		return mintSpec{item: a.rc.ConsolationItem, amount: a.rc.RewardAmount, fallback: a.rc.FallbackItem}, nil
	}

	kind := a.rc.Pool
	if len(a.rc.TierPools) > 0 {
		rolled := odds.ApplyModifiers(cfg.Distribution, contributions).Pick(a.draw(PurposeTier))
		a.result.Tier = rolled
		if mapped, ok := a.rc.TierPools[rolled]; ok {
			kind = mapped
		}
	}

	p, err := a.staged.Pool(kind)
	if err != nil {
		return mintSpec{}, err
	}
	item := p.Select(a.draw(PurposeReward))
	return mintSpec{item: item, amount: a.rc.RewardAmount, fallback: a.rc.FallbackItem}, nil
}

// execute runs one action end to end under the write lock.
func (s *service) execute(ctx context.Context, kind domain.RitualKind, actor domain.Actor, amount uint64, height *int64, prepare prepareFunc) (*Result, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	a := &action{
		kind:   kind,
		actor:  actor,
		amount: amount,
		phase:  PhaseIdle,
		result: &Result{ActionID: uuid.NewString(), Kind: kind, Actor: actor},
	}
	ctx = logger.WithAction(ctx, a.result.ActionID, string(actor))
	log := logger.FromContext(ctx)

	res, err := s.run(ctx, a, height, prepare)

	outcome := metrics.OutcomeDone
	switch {
	case IsRejected(err):
		outcome = metrics.OutcomeRejected
		log.Debug(LogMsgRitualRejected, "kind", kind, "error", err)
	case err != nil:
		outcome = metrics.OutcomeAborted
		log.Error(LogMsgRitualAborted, "kind", kind, "phase", a.phase, "error", err)
	}
	metrics.RitualsTotal.WithLabelValues(string(kind), outcome).Inc()
	metrics.RitualDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	return res, err
}

func (s *service) run(ctx context.Context, a *action, height *int64, prepare prepareFunc) (*Result, error) {
	a.advance(ctx, PhaseValidating)

	live := s.live
	rc, burns, roll, err := s.validate(ctx, live, a, prepare)
	if err != nil {
		return nil, rejected(err)
	}
	a.rc = rc

	entropy := s.entropy(height)
	a.result.Height = entropy.Height
	if !rc.CooldownExempt {
		if err := s.cooldown.CheckCooldown(ctx, live, a.actor, entropy.Height); err != nil {
			return nil, rejected(err)
		}
	}

	a.advance(ctx, PhaseBurning)
	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, aborted(PhaseBurning, fmt.Errorf(ErrMsgBeginTx, err))
	}
	defer repository.SafeRollback(ctx, tx)

	a.staged = live.Clone()
	a.source = rng.NewSource(a.staged, entropy)

	body := func() error {
		return s.apply(ctx, a, tx, burns, roll)
	}
	if rc.CooldownExempt {
		err = body()
	} else {
		err = s.cooldown.EnforceCooldown(ctx, a.staged, a.actor, entropy.Height, body)
	}
	if err != nil {
		return nil, aborted(a.phase, err)
	}

	a.staged.Revision++
	if err := s.commit(ctx, tx, a.staged); err != nil {
		return nil, aborted(PhaseMinting, err)
	}
	s.live = a.staged

	a.advance(ctx, PhaseEmitting)
	s.emit(ctx, a.result)
	a.advance(ctx, PhaseDone)

	logger.FromContext(ctx).Info(LogMsgRitualCompleted,
		"kind", a.kind,
		"height", a.result.Height,
		"reward", a.result.Reward.Item,
		"amount", a.result.Reward.Amount,
		"fallback_used", a.result.Reward.FallbackUsed,
		"nonce", a.staged.Nonce)
	return a.result, nil
}

func (s *service) validate(ctx context.Context, live *state.EngineState, a *action, prepare prepareFunc) (domain.RitualConfig, []domain.ItemAmount, rollFunc, error) {
	if live.Paused {
		return domain.RitualConfig{}, nil, nil, domain.ErrPaused
	}
	if a.actor == "" {
		return domain.RitualConfig{}, nil, nil, fmt.Errorf(ErrMsgEmptyActor, domain.ErrInvalidInput)
	}
	rc, err := live.Ritual(a.kind)
	if err != nil {
		return domain.RitualConfig{}, nil, nil, err
	}

	burns, roll, err := prepare(ctx, live, rc)
	if err != nil {
		return domain.RitualConfig{}, nil, nil, err
	}

	approved, err := s.ledger.IsApprovedForAll(ctx, a.actor, s.operator)
	if err != nil {
		return domain.RitualConfig{}, nil, nil, fmt.Errorf(ErrMsgApprovalLookup, err)
	}
	if !approved {
		return domain.RitualConfig{}, nil, nil, fmt.Errorf("%w: %s has not approved %s", domain.ErrNotApproved, a.actor, s.operator)
	}
	return rc, burns, roll, nil
}

// apply runs the Burning, Rolling and Minting phases inside the ledger transaction.
func (s *service) apply(ctx context.Context, a *action, tx repository.LedgerTx, burns []domain.ItemAmount, roll rollFunc) error {
	for _, b := range burns {
		if err := tx.Burn(ctx, a.actor, b.ItemID, b.Amount); err != nil {
			return aborted(PhaseBurning, fmt.Errorf(ErrMsgBurn, b.Amount, b.ItemID, err))
		}
	}
	a.result.Burned = burns

	a.advance(ctx, PhaseRolling)
	want, err := roll(ctx, a)
	if err != nil {
		return aborted(PhaseRolling, err)
	}

	a.advance(ctx, PhaseMinting)
	minted, err := supply.NewSafeMinter(tx, a.staged).SafeMint(ctx, a.actor, want.item, want.amount, want.fallback)
	if err != nil {
		return aborted(PhaseMinting, err)
	}
	a.result.Reward = minted
	return nil
}

// commit persists the staged state and commits the ledger. When the ledger
// transaction can carry the state both land atomically; otherwise the state
// store is written after the ledger commit.
func (s *service) commit(ctx context.Context, tx repository.LedgerTx, staged *state.EngineState) error {
	snapshot, err := repository.NewSnapshot(staged)
	if err != nil {
		return err
	}

	stx, inTx := tx.(repository.StateTx)
	if inTx {
		if err := stx.SaveState(ctx, snapshot); err != nil {
			return fmt.Errorf(ErrMsgSaveState, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommit, err)
	}

	if !inTx && s.store != nil {
		if err := s.store.SaveState(ctx, snapshot); err != nil {
			logger.FromContext(ctx).Error(LogMsgStatePersistFailed, "revision", staged.Revision, "error", err)
		}
	}
	return nil
}
