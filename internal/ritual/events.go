package ritual

import (
	"context"

	"github.com/osse101/MawRitual_Go/internal/event"
	"github.com/osse101/MawRitual_Go/internal/logger"
)

// emit publishes the events of a committed action. Delivery failures are
// logged; the action itself already committed.
func (s *service) emit(ctx context.Context, r *Result) {
	burned := make([]event.ItemAmountV1, len(r.Burned))
	for i, b := range r.Burned {
		burned[i] = event.ItemAmountV1{ItemID: uint64(b.ItemID), Amount: b.Amount}
	}
	draws := make([]event.DrawV1, len(r.Draws))
	for i, d := range r.Draws {
		draws[i] = event.DrawV1{Nonce: d.Nonce, Seed: d.Seed.Hex(), Purpose: d.Purpose}
	}

	s.publish(ctx, event.NewRitualCompletedEvent(event.RitualCompletedPayloadV1{
		ActionID: r.ActionID,
		Actor:    string(r.Actor),
		Kind:     string(r.Kind),
		Height:   r.Height,
		Burned:   burned,
		Reward: event.RewardV1{
			ItemID:       uint64(r.Reward.Item),
			Amount:       r.Reward.Amount,
			Requested:    uint64(r.Reward.Requested),
			FallbackUsed: r.Reward.FallbackUsed,
		},
		Success:    r.Success,
		SuccessBps: r.SuccessBps,
		Tier:       string(r.Tier),
		Draws:      draws,
	}))

	if r.Reward.FallbackUsed {
		s.publish(ctx, event.NewFallbackMintedEvent(
			r.ActionID,
			string(r.Actor),
			uint64(r.Reward.Requested),
			uint64(r.Reward.Item),
			r.Reward.Amount,
			r.Reward.Reason,
		))
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
