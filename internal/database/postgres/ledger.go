package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MawRitual_Go/internal/database/generated"
	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/repository"
)

// Ledger is the Postgres token ledger. Every ritual runs in one database
// transaction; the engine state snapshot is written inside it.
type Ledger struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewLedger creates a ledger over db
func NewLedger(db *pgxpool.Pool) *Ledger {
	return &Ledger{db: db, q: generated.New(db)}
}

var (
	_ repository.Ledger   = (*Ledger)(nil)
	_ repository.LedgerTx = (*ledgerTx)(nil)
	_ repository.StateTx  = (*ledgerTx)(nil)
)

func (l *Ledger) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := l.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &ledgerTx{tx: tx, q: l.q.WithTx(tx)}, nil
}

func (l *Ledger) BalanceOfBatch(ctx context.Context, actors []domain.Actor, items []domain.ItemID) ([]uint64, error) {
	if len(actors) != len(items) {
		return nil, fmt.Errorf("%w: %d actors for %d items", domain.ErrInvalidInput, len(actors), len(items))
	}
	if len(actors) == 0 {
		return []uint64{}, nil
	}

	names := make([]string, len(actors))
	for i, a := range actors {
		names[i] = string(a)
	}
	ids, err := itemIDs(items)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT COALESCE(b.amount, 0)
		FROM unnest($1::text[], $2::bigint[]) WITH ORDINALITY AS q(actor, item_id, ord)
		LEFT JOIN balances b ON b.actor = q.actor AND b.item_id = q.item_id
		ORDER BY q.ord
	`
	rows, err := l.db.Query(ctx, query, names, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadBalance, err)
	}
	amounts, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadBalance, err)
	}

	out := make([]uint64, len(amounts))
	for i, v := range amounts {
		out[i] = uint64(v)
	}
	return out, nil
}

func (l *Ledger) IsApprovedForAll(ctx context.Context, owner, operator domain.Actor) (bool, error) {
	approved, err := l.q.IsApprovedForAll(ctx, generated.IsApprovedForAllParams{
		Owner:    string(owner),
		Operator: string(operator),
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToReadApproval, err)
	}
	return approved, nil
}

func (l *Ledger) SetApprovalForAll(ctx context.Context, owner, operator domain.Actor, approved bool) error {
	var err error
	if approved {
		err = l.q.ApproveOperator(ctx, generated.ApproveOperatorParams{Owner: string(owner), Operator: string(operator)})
	} else {
		err = l.q.RevokeOperator(ctx, generated.RevokeOperatorParams{Owner: string(owner), Operator: string(operator)})
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetApproval, err)
	}
	return nil
}

func (l *Ledger) Grant(ctx context.Context, to domain.Actor, item domain.ItemID, amount uint64) error {
	if amount == 0 {
		return domain.ErrInvalidAmount
	}
	if err := credit(ctx, l.q, to, item, amount); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGrant, err)
	}
	return nil
}

// DenyMint marks item as not mintable by the engine
func (l *Ledger) DenyMint(ctx context.Context, item domain.ItemID) error {
	id, err := toBigint(uint64(item))
	if err != nil {
		return err
	}
	return l.q.DenyMint(ctx, id)
}

// credit adds amount to a balance, creating the row on first use.
func credit(ctx context.Context, q *generated.Queries, to domain.Actor, item domain.ItemID, amount uint64) error {
	id, err := toBigint(uint64(item))
	if err != nil {
		return err
	}
	n, err := toBigint(amount)
	if err != nil {
		return err
	}
	err = q.CreditBalance(ctx, generated.CreditBalanceParams{Actor: string(to), ItemID: id, Amount: n})
	if pgErrorCode(err) == PgErrorCodeNumericOutOfRange {
		return fmt.Errorf("%w: balance overflow", domain.ErrSupplyExceeded)
	}
	return err
}

type ledgerTx struct {
	tx pgx.Tx
	q  *generated.Queries
}

func (t *ledgerTx) Burn(ctx context.Context, from domain.Actor, item domain.ItemID, amount uint64) error {
	id, err := toBigint(uint64(item))
	if err != nil {
		return err
	}
	n, err := toBigint(amount)
	if err != nil {
		return err
	}

	affected, err := t.q.BurnBalance(ctx, generated.BurnBalanceParams{Amount: n, Actor: string(from), ItemID: id})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBurn, mapTxErr(err))
	}
	if affected == 0 && n > 0 {
		have, err := t.BalanceOf(ctx, from, item)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: %s holds %d of item %d, needs %d", domain.ErrInsufficientBalance, from, have, item, amount)
	}
	return nil
}

func (t *ledgerTx) Mint(ctx context.Context, to domain.Actor, item domain.ItemID, amount uint64) error {
	id, err := toBigint(uint64(item))
	if err != nil {
		return err
	}

	denied, err := t.q.IsMintDenied(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMint, mapTxErr(err))
	}
	if denied {
		return fmt.Errorf("%w: item %d", domain.ErrNotAuthorized, item)
	}

	// A failed statement aborts the whole transaction, so the credit runs in
	// a savepoint and the supply guard can still mint its fallback.
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMint, mapTxErr(err))
	}
	if err := credit(ctx, t.q.WithTx(sp), to, item, amount); err != nil {
		SafeRollback(ctx, sp)
		if errors.Is(err, domain.ErrSupplyExceeded) || errors.Is(err, domain.ErrInvalidAmount) {
			return err
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToMint, mapTxErr(err))
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMint, mapTxErr(err))
	}
	return nil
}

func (t *ledgerTx) BalanceOf(ctx context.Context, actor domain.Actor, item domain.ItemID) (uint64, error) {
	id, err := toBigint(uint64(item))
	if err != nil {
		return 0, err
	}
	amount, err := t.q.GetBalance(ctx, generated.GetBalanceParams{Actor: string(actor), ItemID: id})
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToReadBalance, mapTxErr(err))
	}
	return uint64(amount), nil
}

// SaveState writes the engine snapshot as part of this transaction.
func (t *ledgerTx) SaveState(ctx context.Context, snapshot *repository.StateSnapshot) error {
	return saveState(ctx, t.q, snapshot)
}

func (t *ledgerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommit, mapTxErr(err))
	}
	return nil
}

func (t *ledgerTx) Rollback(ctx context.Context) error {
	return mapTxErr(t.tx.Rollback(ctx))
}
