package eventlog

import (
	"context"
	"time"
)

// Event is one stored ritual event. Payload is the event payload decoded to a
// JSON object, so a completed ritual carries its nonce, draws and entropy.
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	Actor     *string                `json:"actor,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func (e Event) ActionID() string {
	id, _ := e.Payload[PayloadKeyActionID].(string)
	return id
}

// EventFilter narrows GetEvents. Nil fields match everything, the time
// bounds are inclusive and a zero Limit returns every match.
type EventFilter struct {
	Actor     *string
	EventType *string
	ActionID  *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Matches applies the filter to one event in memory. The Postgres
// repository expresses the same predicate in SQL.
func (f EventFilter) Matches(e Event) bool {
	switch {
	case f.Actor != nil && (e.Actor == nil || *e.Actor != *f.Actor):
		return false
	case f.EventType != nil && e.EventType != *f.EventType:
		return false
	case f.ActionID != nil && e.ActionID() != *f.ActionID:
		return false
	case f.Since != nil && e.CreatedAt.Before(*f.Since):
		return false
	case f.Until != nil && e.CreatedAt.After(*f.Until):
		return false
	}
	return true
}

type Repository interface {
	LogEvent(ctx context.Context, eventType string, actor *string, payload, metadata map[string]interface{}) error

	// GetEvents returns matching events, newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents deletes events older than retentionDays and reports how many went
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
