package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/MawRitual_Go/internal/event"
	"github.com/osse101/MawRitual_Go/internal/eventlog"
	"github.com/osse101/MawRitual_Go/internal/metrics"
)

// EventHandlerDependencies holds what RegisterEventHandlers wires together.
// Publisher is optional; when set, events dead-lettered by an earlier run are
// replayed once the subscribers are in place.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	Publisher       *event.ResilientPublisher
}

// RegisterEventHandlers subscribes the metrics collector and the event log,
// then replays leftover dead letters through the publisher.
func RegisterEventHandlers(ctx context.Context, deps EventHandlerDependencies) error {
	if err := metrics.NewEventMetricsCollector().Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	if deps.Publisher == nil {
		return nil
	}
	replayed, err := deps.Publisher.ReplayDeadLetters(ctx)
	if err != nil {
		// Leftover dead letters stay on disk for the next start
		slog.Warn(LogMsgDeadLetterReplayFailed, "error", err)
		return nil
	}
	if replayed > 0 {
		slog.Info(LogMsgDeadLettersReplayed, "count", replayed)
	}
	return nil
}
