package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/MawRitual_Go/internal/event"
	"github.com/osse101/MawRitual_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all ritual events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range []event.Type{event.RitualCompleted, event.FallbackMinted, event.ConfigUpdated} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RitualCompleted:
		p, err := event.DecodePayload[event.RitualCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUndecodable, LabelType, evt.Type, "error", err)
			return nil
		}
		for _, b := range p.Burned {
			ItemsBurned.WithLabelValues(p.Kind, itemLabel(b.ItemID)).Add(float64(b.Amount))
		}
		RewardsMinted.WithLabelValues(p.Kind, itemLabel(p.Reward.ItemID)).Add(float64(p.Reward.Amount))
		if p.SuccessBps != nil {
			SuccessBps.Observe(float64(*p.SuccessBps))
		}
		if n := len(p.Draws); n > 0 {
			SacrificeNonce.Set(float64(p.Draws[n-1].Nonce))
		}
	case event.FallbackMinted:
		p, err := event.DecodePayload[event.FallbackMintedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUndecodable, LabelType, evt.Type, "error", err)
			return nil
		}
		FallbackMints.WithLabelValues(itemLabel(p.Requested)).Inc()
	case event.ConfigUpdated:
		p, err := event.DecodePayload[event.ConfigUpdatedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUndecodable, LabelType, evt.Type, "error", err)
			return nil
		}
		ConfigUpdates.WithLabelValues(p.Operation).Inc()
		ConfigRevision.Set(float64(p.Revision))
	}

	log.Debug(LogMsgMetricsRecorded, LabelType, evt.Type)
	return nil
}

func itemLabel(id uint64) string {
	return strconv.FormatUint(id, 10)
}
