package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/MawRitual_Go/internal/domain"
)

type rollbackTx struct{ err error }

func (rollbackTx) Commit(context.Context) error     { return nil }
func (t rollbackTx) Rollback(context.Context) error { return t.err }

func TestSafeRollback(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{"rolled back", nil, false},
		{"already committed", domain.ErrTxClosed, false},
		{"wrapped closed", fmt.Errorf("ledger: %w", domain.ErrTxClosed), false},
		{"real failure", errors.New("connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prev := slog.Default()
			slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
			t.Cleanup(func() { slog.SetDefault(prev) })

			SafeRollback(context.Background(), rollbackTx{err: tt.err})

			if tt.wantLog {
				assert.Contains(t, buf.String(), "connection reset")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
