package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/MawRitual_Go/internal/eventlog"
)

const defaultEventsLimit = eventlog.DefaultQueryLimit

// EventsHandler serves the persisted ritual event log
type EventsHandler struct {
	eventlogService eventlog.Service
}

func NewEventsHandler(eventlogService eventlog.Service) *EventsHandler {
	return &EventsHandler{eventlogService: eventlogService}
}

// EventsResponse contains event log query results
type EventsResponse struct {
	Events []EventLogEntry `json:"events"`
}

type EventLogEntry struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	Actor     *string                `json:"actor,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

func optionalString(q url.Values, key string) *string {
	if v := q.Get(key); v != "" {
		return &v
	}
	return nil
}

func optionalTime(q url.Values, key string) (*time.Time, bool) {
	raw := q.Get(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// parseEventFilter reads the query string. A non-empty message means the
// request is rejected with 400.
func parseEventFilter(q url.Values) (eventlog.EventFilter, string) {
	filter := eventlog.EventFilter{
		Actor:     optionalString(q, "actor"),
		EventType: optionalString(q, "event_type"),
		ActionID:  optionalString(q, "action_id"),
		Limit:     defaultEventsLimit,
	}

	var ok bool
	if filter.Since, ok = optionalTime(q, "since"); !ok {
		return filter, ErrMsgInvalidSince
	}
	if filter.Until, ok = optionalTime(q, "until"); !ok {
		return filter, ErrMsgInvalidUntil
	}
	if filter.Since != nil && filter.Until != nil && filter.Since.After(*filter.Until) {
		return filter, ErrMsgInvalidWindow
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > eventlog.MaxQueryLimit {
			return filter, ErrMsgInvalidLimit
		}
		filter.Limit = limit
	}
	return filter, ""
}

// HandleGetEvents lists logged events, newest first. The payload of a
// completed ritual carries nonce, seeds and chain entropy so a roll can be replayed.
// GET /api/v1/ritual/events?actor=X&event_type=Y&action_id=A&since=Z&until=W&limit=N
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	filter, msg := parseEventFilter(r.URL.Query())
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	events, err := h.eventlogService.GetEvents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetEventsFailed, err)
		return
	}

	entries := make([]EventLogEntry, len(events))
	for i, evt := range events {
		entries[i] = EventLogEntry{
			ID:        evt.ID,
			EventType: evt.EventType,
			Actor:     evt.Actor,
			Payload:   evt.Payload,
			Metadata:  evt.Metadata,
			CreatedAt: evt.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	respondJSON(w, http.StatusOK, EventsResponse{Events: entries})
}
