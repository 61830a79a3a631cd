package pool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/rng"
)

const (
	itemB domain.ItemID = 20
	itemC domain.ItemID = 30
)

func exampleEntries() []domain.WeightedEntry {
	return []domain.WeightedEntry{{ItemID: itemB, Weight: 70}, {ItemID: itemC, Weight: 30}}
}

func TestNew_Validation(t *testing.T) {
	_, err := New("empty", 1, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyPool)

	_, err = New("zero", 1, []domain.WeightedEntry{{ItemID: 1, Weight: 5}, {ItemID: 2, Weight: 0}})
	assert.ErrorIs(t, err, domain.ErrZeroWeight)

	p, err := New("ok", 3, exampleEntries())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), p.TotalWeight)
	assert.Equal(t, uint64(70), p.Entries[0].CumulWeight)
	assert.Equal(t, uint64(100), p.Entries[1].CumulWeight)
	assert.Equal(t, uint64(3), p.Version)
}

func TestSelect_Boundaries(t *testing.T) {
	p, err := New(domain.PoolRelic, 1, exampleEntries())
	require.NoError(t, err)

	tests := []struct {
		target uint64
		want   domain.ItemID
	}{
		{0, itemB},
		{45, itemB},
		{69, itemB},
		{70, itemC}, // cumulative(B) == 70 does not exceed 70
		{99, itemC},
		{145, itemB}, // 145 mod 100 = 45
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Select(rng.SeedFromUint64(tt.target)), "target %d", tt.target)
	}
}

func TestSelect_FirstMatchWinsOnDuplicates(t *testing.T) {
	p, err := New("dups", 1, []domain.WeightedEntry{
		{ItemID: 1, Weight: 1},
		{ItemID: 2, Weight: 1},
		{ItemID: 3, Weight: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ItemID(1), p.Select(rng.SeedFromUint64(0)))
	assert.Equal(t, domain.ItemID(2), p.Select(rng.SeedFromUint64(1)))
	assert.Equal(t, domain.ItemID(3), p.Select(rng.SeedFromUint64(2)))
}

func TestPreview_MatchesSelect(t *testing.T) {
	p, err := New(domain.PoolRelic, 1, exampleEntries())
	require.NoError(t, err)
	ctx := domain.ActionContext{Actor: "alice", Kind: domain.RitualPlainRelic, Amount: 1}
	for nonce := uint64(1); nonce <= 500; nonce++ {
		seed := rng.Derive(nonce, domain.ChainEntropy{Height: int64(nonce)}, ctx)
		require.Equal(t, p.Select(seed), Preview(p, seed))
		require.Equal(t, p.Select(seed), p.Select(seed))
	}
}

// Chi-squared goodness of fit over 100k keccak-derived seeds.
func TestSelect_WeightedDrawLaw(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large-sample draw test in short mode")
	}
	weights := []uint32{50, 30, 15, 5}
	entries := make([]domain.WeightedEntry, len(weights))
	for i, w := range weights {
		entries[i] = domain.WeightedEntry{ItemID: domain.ItemID(i + 1), Weight: w}
	}
	p, err := New("law", 1, entries)
	require.NoError(t, err)

	const n = 100000
	counts := make(map[domain.ItemID]int, len(weights))
	ctx := domain.ActionContext{Actor: "sampler", Kind: domain.RitualPlainRelic, Amount: 1}
	for nonce := uint64(1); nonce <= n; nonce++ {
		counts[p.Select(rng.Derive(nonce, domain.ChainEntropy{Height: 42}, ctx))]++
	}

	var chi2 float64
	for i, w := range weights {
		expected := float64(n) * float64(w) / float64(p.TotalWeight)
		diff := float64(counts[domain.ItemID(i+1)]) - expected
		chi2 += diff * diff / expected
	}
	// df=3; 30.0 is beyond the 1e-6 tail.
	assert.Less(t, chi2, 30.0, "counts=%v", counts)
}

func TestOdds_SumsToTenThousand(t *testing.T) {
	p, err := New("thirds", 1, []domain.WeightedEntry{
		{ItemID: 1, Weight: 1},
		{ItemID: 2, Weight: 1},
		{ItemID: 3, Weight: 1},
	})
	require.NoError(t, err)

	odds := Odds(p)
	var sum uint32
	for _, o := range odds {
		sum += o.Bps
	}
	assert.Equal(t, uint32(10000), sum)
	assert.Equal(t, uint32(3334), odds[0].Bps, "remainder goes to the first largest entry")
	assert.Equal(t, uint32(3333), odds[1].Bps)
}

func TestRewardPool_JSONRoundTrip(t *testing.T) {
	p, err := New(domain.PoolRelic, 4, exampleEntries())
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back RewardPool
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, &back)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"x","entries":[]}`), &back))
}
