package eventlog

import (
	"context"

	"github.com/osse101/MawRitual_Go/internal/event"
	"github.com/osse101/MawRitual_Go/internal/logger"
)

// Service persists bus events and answers event log queries
type Service interface {
	// Subscribe attaches the recorder to every type in LoggedTypes
	Subscribe(bus event.Bus) error

	// GetEvents returns logged events, newest first. Limit is clamped to
	// 1..MaxQueryLimit with DefaultQueryLimit for zero.
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

// LoggedTypes are the event types persisted for roll reproduction
var LoggedTypes = []event.Type{
	event.RitualCompleted,
	event.FallbackMinted,
	event.ConfigUpdated,
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, t := range LoggedTypes {
		bus.Subscribe(t, s.record)
	}
	return nil
}

// record stores evt with its payload decoded to a JSON object. Events
// whose payload is not an object are skipped, not failed, so the
// publisher never retries them.
func (s *service) record(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx).With(LogFieldType, evt.Type)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadNotMap, LogFieldError, err)
		return nil
	}

	actor := actorOf(payload)
	if err := s.repo.LogEvent(ctx, string(evt.Type), actor, payload, evt.Metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err)
		return err
	}
	log.Debug(LogMsgEventLogged, LogFieldActor, actor)
	return nil
}

func actorOf(payload map[string]interface{}) *string {
	a, ok := payload[PayloadKeyActor].(string)
	if !ok || a == "" {
		return nil
	}
	return &a
}

func (s *service) GetEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	filter.Limit = clampLimit(filter.Limit)
	return s.repo.GetEvents(ctx, filter)
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultQueryLimit
	case n > MaxQueryLimit:
		return MaxQueryLimit
	}
	return n
}

func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
