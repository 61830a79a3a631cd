package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/MawRitual_Go/internal/eventlog"
)

func TestBuildEventQuery(t *testing.T) {
	actor, typ, action := "alice", "ritual.completed", "act-1"
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter eventlog.EventFilter
		where  string
		args   []interface{}
	}{
		{
			name:  "no filter",
			where: " ORDER BY created_at DESC, id DESC",
		},
		{
			name:   "actor and limit",
			filter: eventlog.EventFilter{Actor: &actor, Limit: 5},
			where:  " WHERE actor = $1 ORDER BY created_at DESC, id DESC LIMIT $2",
			args:   []interface{}{"alice", 5},
		},
		{
			name:   "type action and since",
			filter: eventlog.EventFilter{EventType: &typ, ActionID: &action, Since: &since},
			where:  " WHERE event_type = $1 AND payload->>'action_id' = $2 AND created_at >= $3 ORDER BY created_at DESC, id DESC",
			args:   []interface{}{"ritual.completed", "act-1", since},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildEventQuery(tt.filter)
			assert.Equal(t, selectEventColumns+tt.where, query)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestTextFromPtr(t *testing.T) {
	assert.False(t, textFromPtr(nil).Valid)

	actor := "alice"
	got := textFromPtr(&actor)
	assert.True(t, got.Valid)
	assert.Equal(t, "alice", got.String)
}
