package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MawRitual_Go/internal/database/generated"
	"github.com/osse101/MawRitual_Go/internal/repository"
)

type stateStore struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewStateStore creates the engine state store
func NewStateStore(db *pgxpool.Pool) repository.StateStore {
	return &stateStore{db: db, q: generated.New(db)}
}

func (s *stateStore) LoadState(ctx context.Context) (*repository.StateSnapshot, error) {
	row, err := s.q.GetEngineState(ctx, StateKeyEngine)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadState, err)
	}
	return &repository.StateSnapshot{SchemaVersion: int(row.SchemaVersion), Revision: uint64(row.Revision), Data: row.Data}, nil
}

func (s *stateStore) SaveState(ctx context.Context, snapshot *repository.StateSnapshot) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if err := saveState(ctx, s.q.WithTx(tx), snapshot); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return nil
}

// saveState takes the engine advisory lock and upserts the snapshot. Older
// revisions never overwrite newer ones.
func saveState(ctx context.Context, q *generated.Queries, snapshot *repository.StateSnapshot) error {
	if err := q.LockEngineState(ctx, advisoryLockKey(advisoryLockName)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLockState, mapTxErr(err))
	}

	revision, err := toBigint(snapshot.Revision)
	if err != nil {
		return err
	}
	err = q.UpsertEngineState(ctx, generated.UpsertEngineStateParams{
		StateKey:      StateKeyEngine,
		SchemaVersion: int32(snapshot.SchemaVersion),
		Revision:      revision,
		Data:          []byte(snapshot.Data),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveState, mapTxErr(err))
	}
	return nil
}
