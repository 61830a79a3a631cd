package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MawRitual_Go/internal/database/generated"
	"github.com/osse101/MawRitual_Go/internal/eventlog"
)

const selectEventColumns = `SELECT id, event_type, actor, payload, metadata, created_at FROM ritual_events`

type eventLogRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewEventLogRepository returns the ritual_events table as an eventlog.Repository
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db, q: generated.New(db)}
}

func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, actor *string, payload, metadata map[string]interface{}) error {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodePayload, err)
	}

	var metadataJSON []byte
	if metadata != nil {
		if metadataJSON, err = json.Marshal(metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToEncodePayload, err)
		}
	}

	err = r.q.InsertEvent(ctx, generated.InsertEventParams{
		EventType: eventType,
		Actor:     textFromPtr(actor),
		Payload:   payloadJSON,
		Metadata:  metadataJSON,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

func (r *eventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	query, args := buildEventQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	return events, nil
}

// buildEventQuery turns a filter into a parameterised query, newest first.
// id breaks ties between events logged in the same transaction.
func buildEventQuery(filter eventlog.EventFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Actor != nil {
		add("actor = $%d", *filter.Actor)
	}
	if filter.EventType != nil {
		add("event_type = $%d", *filter.EventType)
	}
	if filter.ActionID != nil {
		add("payload->>'"+eventlog.PayloadKeyActionID+"' = $%d", *filter.ActionID)
	}
	if filter.Since != nil {
		add("created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		add("created_at <= $%d", *filter.Until)
	}

	var b strings.Builder
	b.WriteString(selectEventColumns)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}

func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM ritual_events WHERE created_at < NOW() - INTERVAL '1 day' * $1`, retentionDays)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func scanEvent(row pgx.CollectableRow) (eventlog.Event, error) {
	var evt eventlog.Event
	var payloadJSON, metadataJSON []byte
	if err := row.Scan(&evt.ID, &evt.EventType, &evt.Actor, &payloadJSON, &metadataJSON, &evt.CreatedAt); err != nil {
		return evt, err
	}
	if err := json.Unmarshal(payloadJSON, &evt.Payload); err != nil {
		return evt, err
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &evt.Metadata); err != nil {
			return evt, err
		}
	}
	return evt, nil
}
