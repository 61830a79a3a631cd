package postgres

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MawRitual_Go/internal/cooldown"
	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/eventlog"
	"github.com/osse101/MawRitual_Go/internal/odds"
	"github.com/osse101/MawRitual_Go/internal/repository"
	"github.com/osse101/MawRitual_Go/internal/ritual"
	"github.com/osse101/MawRitual_Go/internal/state"
)

const (
	alice    domain.Actor = "alice"
	operator domain.Actor = "operator"
)

func TestLedger_Integration(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	l := NewLedger(pool)

	require.NoError(t, l.Grant(ctx, alice, domain.ItemRustedKey, 10))

	t.Run("BalanceOfBatch keeps order and zero fills", func(t *testing.T) {
		got, err := l.BalanceOfBatch(ctx,
			[]domain.Actor{alice, "nobody", alice},
			[]domain.ItemID{domain.ItemRustedKey, domain.ItemRustedKey, domain.ItemWormMask})
		require.NoError(t, err)
		assert.Equal(t, []uint64{10, 0, 0}, got)
	})

	t.Run("approvals", func(t *testing.T) {
		ok, err := l.IsApprovedForAll(ctx, alice, operator)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, l.SetApprovalForAll(ctx, alice, operator, true))
		require.NoError(t, l.SetApprovalForAll(ctx, alice, operator, true))
		ok, err = l.IsApprovedForAll(ctx, alice, operator)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, l.SetApprovalForAll(ctx, alice, operator, false))
		ok, err = l.IsApprovedForAll(ctx, alice, operator)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rollback discards burns and mints", func(t *testing.T) {
		tx, err := l.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Burn(ctx, alice, domain.ItemRustedKey, 4))
		require.NoError(t, tx.Mint(ctx, alice, domain.ItemWormMask, 1))

		inside, err := tx.BalanceOf(ctx, alice, domain.ItemRustedKey)
		require.NoError(t, err)
		assert.Equal(t, uint64(6), inside)

		require.NoError(t, tx.Rollback(ctx))
		assert.ErrorIs(t, tx.Rollback(ctx), domain.ErrTxClosed)

		got, err := l.BalanceOfBatch(ctx, []domain.Actor{alice, alice}, []domain.ItemID{domain.ItemRustedKey, domain.ItemWormMask})
		require.NoError(t, err)
		assert.Equal(t, []uint64{10, 0}, got)
	})

	t.Run("burn beyond balance fails", func(t *testing.T) {
		tx, err := l.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		err = tx.Burn(ctx, alice, domain.ItemRustedKey, 11)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("denied and overflowing mints keep the tx usable", func(t *testing.T) {
		require.NoError(t, l.DenyMint(ctx, domain.ItemSoulDeed))
		require.NoError(t, l.Grant(ctx, alice, domain.ItemAshVial, math.MaxInt64))

		tx, err := l.BeginTx(ctx)
		require.NoError(t, err)

		assert.ErrorIs(t, tx.Mint(ctx, alice, domain.ItemSoulDeed, 1), domain.ErrNotAuthorized)
		assert.ErrorIs(t, tx.Mint(ctx, alice, domain.ItemAshVial, 1), domain.ErrSupplyExceeded)
		require.NoError(t, tx.Mint(ctx, alice, domain.ItemGlassShard, 1))
		require.NoError(t, tx.Commit(ctx))

		got, err := l.BalanceOfBatch(ctx, []domain.Actor{alice}, []domain.ItemID{domain.ItemGlassShard})
		require.NoError(t, err)
		assert.Equal(t, []uint64{1}, got)
	})
}

func TestStateStore_Integration(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	store := NewStateStore(pool)

	snap, err := store.LoadState(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap, "empty store has no snapshot")

	s := state.New()
	s.Nonce = 41
	s.Revision = 5
	saved, err := repository.NewSnapshot(s)
	require.NoError(t, err)
	require.NoError(t, store.SaveState(ctx, saved))

	t.Run("round trip", func(t *testing.T) {
		loaded, err := store.LoadState(ctx)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, uint64(5), loaded.Revision)

		restored, err := loaded.Decode()
		require.NoError(t, err)
		assert.Equal(t, uint64(41), restored.Nonce)
	})

	t.Run("older revision does not overwrite", func(t *testing.T) {
		old := state.New()
		old.Nonce = 1
		old.Revision = 2
		snap, err := repository.NewSnapshot(old)
		require.NoError(t, err)
		require.NoError(t, store.SaveState(ctx, snap))

		loaded, err := store.LoadState(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), loaded.Revision)
	})

	t.Run("saved inside a ledger tx only on commit", func(t *testing.T) {
		next := state.New()
		next.Nonce = 42
		next.Revision = 6
		snap, err := repository.NewSnapshot(next)
		require.NoError(t, err)

		tx, err := NewLedger(pool).BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.(repository.StateTx).SaveState(ctx, snap))
		require.NoError(t, tx.Rollback(ctx))

		loaded, err := store.LoadState(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), loaded.Revision)

		tx, err = NewLedger(pool).BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.(repository.StateTx).SaveState(ctx, snap))
		require.NoError(t, tx.Commit(ctx))

		loaded, err = store.LoadState(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(6), loaded.Revision)
	})
}

func TestEventLog_Integration(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := NewEventLogRepository(pool)

	actor := string(alice)
	for i := range 3 {
		require.NoError(t, repo.LogEvent(ctx, "ritual.completed", &actor, map[string]interface{}{"n": i}, nil))
	}
	require.NoError(t, repo.LogEvent(ctx, "config.updated", nil, map[string]interface{}{"op": "set_pool"}, map[string]interface{}{"source": "test"}))

	events, err := repo.GetEvents(ctx, eventlog.EventFilter{Actor: &actor, Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, float64(2), events[0].Payload["n"], "newest first")

	configType := "config.updated"
	byType, err := repo.GetEvents(ctx, eventlog.EventFilter{EventType: &configType, Limit: 10})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Nil(t, byType[0].Actor)
	assert.Equal(t, "test", byType[0].Metadata["source"])

	require.NoError(t, repo.LogEvent(ctx, "ritual.fallback_minted", &actor, map[string]interface{}{"action_id": "act-5"}, nil))
	actionID := "act-5"
	byAction, err := repo.GetEvents(ctx, eventlog.EventFilter{ActionID: &actionID})
	require.NoError(t, err)
	require.Len(t, byAction, 1)
	assert.Equal(t, "act-5", byAction[0].ActionID())

	limited, err := repo.GetEvents(ctx, eventlog.EventFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = pool.Exec(ctx, `UPDATE ritual_events SET created_at = NOW() - INTERVAL '10 days' WHERE event_type = 'config.updated'`)
	require.NoError(t, err)
	deleted, err := repo.CleanupOldEvents(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

type fixedChain struct{ height int64 }

func (c fixedChain) Entropy() domain.ChainEntropy { return c.EntropyAt(c.height) }

func (c fixedChain) EntropyAt(height int64) domain.ChainEntropy {
	return domain.ChainEntropy{Height: height, Timestamp: 1_700_000_000 + height*12}
}

// TestRitual_PostgresBackend runs concurrent sacrifices against the Postgres
// ledger and checks both conservation and the persisted nonce.
func TestRitual_PostgresBackend(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()

	genesis, err := state.FromGenesis(state.Genesis{
		Pools: map[domain.PoolKind][]domain.WeightedEntry{
			domain.PoolRelic: {{ItemID: domain.ItemLanternFragment, Weight: 3}, {ItemID: domain.ItemWormMask, Weight: 1}},
		},
		Success: odds.Config{
			MaxBps: domain.DefaultMaxSuccessBps,
			Tiers:  []odds.SuccessTier{{Name: "single", MinAmount: 1, BaseBps: 1000}},
		},
		Rituals: []domain.RitualConfig{
			{Kind: domain.RitualPlainRelic, InputItem: domain.ItemRustedKey, Pool: domain.PoolRelic, FallbackItem: domain.ItemGlassShard, CooldownExempt: true},
		},
	})
	require.NoError(t, err)

	l := NewLedger(pool)
	store := NewStateStore(pool)
	svc := ritual.NewService(genesis, l, store, nil, cooldown.NewService(cooldown.Config{}), fixedChain{height: 100}, ritual.Config{Operator: operator})

	require.NoError(t, l.Grant(ctx, alice, domain.ItemRustedKey, 20))
	require.NoError(t, l.SetApprovalForAll(ctx, alice, operator, true))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SacrificeRelics(ctx, ritual.SacrificeRequest{Actor: alice, Amount: 2})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := l.BalanceOfBatch(ctx,
		[]domain.Actor{alice, alice, alice},
		[]domain.ItemID{domain.ItemRustedKey, domain.ItemLanternFragment, domain.ItemWormMask})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got[0])
	assert.Equal(t, uint64(10), got[1]+got[2], "one reward per action")

	snap, err := store.LoadState(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	restored, err := snap.Decode()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), restored.Nonce)
}
