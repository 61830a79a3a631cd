package eventlog

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps the newest events in a bounded ring.
type MemoryRepository struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	nextID   int64
	nowFunc  func() time.Time
}

// NewMemoryRepository creates a repository holding at most capacity events
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = DefaultMemoryEntries
	}
	return &MemoryRepository{capacity: capacity, nowFunc: time.Now}
}

func (r *MemoryRepository) LogEvent(_ context.Context, eventType string, actor *string, payload, metadata map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.events = append(r.events, Event{
		ID:        r.nextID,
		EventType: eventType,
		Actor:     actor,
		Payload:   payload,
		Metadata:  metadata,
		CreatedAt: r.nowFunc(),
	})
	if len(r.events) > r.capacity {
		r.events = append([]Event(nil), r.events[len(r.events)-r.capacity:]...)
	}
	return nil
}

func (r *MemoryRepository) GetEvents(_ context.Context, filter EventFilter) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Event
	for i := len(r.events) - 1; i >= 0; i-- {
		evt := r.events[i]
		if !filter.Matches(evt) {
			continue
		}
		out = append(out, evt)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepository) CleanupOldEvents(_ context.Context, retentionDays int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.nowFunc().AddDate(0, 0, -retentionDays)
	kept := r.events[:0]
	var deleted int64
	for _, evt := range r.events {
		if evt.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, evt)
	}
	r.events = kept
	return deleted, nil
}
