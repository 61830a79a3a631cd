package repository

import (
	"context"
	"errors"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/logger"
)

// IsTxClosed reports whether err means the transaction already finished
func IsTxClosed(err error) bool {
	return errors.Is(err, domain.ErrTxClosed)
}

// SafeRollback is meant to be deferred right after Begin. A rollback after
// Commit is silent; any other failure is logged.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || IsTxClosed(err) {
		return
	}
	logger.FromContext(ctx).Error("Failed to rollback ledger transaction", "error", err)
}
