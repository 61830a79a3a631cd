package pool

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/rng"
)

// Entry is one weighted entry with its cumulative weight up to and including itself.
type Entry struct {
	domain.WeightedEntry
	CumulWeight uint64
}

// RewardPool is an ordered weighted pool. It is immutable once built: admin
// updates replace the whole pool so a reader never sees entries and total
// weight out of step.
type RewardPool struct {
	Kind        domain.PoolKind
	Version     uint64
	Entries     []Entry
	TotalWeight uint64
}

// New validates entries and builds a pool with cached cumulative weights.
// Insertion order is preserved; it decides tie-breaks.
func New(kind domain.PoolKind, version uint64, entries []domain.WeightedEntry) (*RewardPool, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyPool, kind)
	}

	p := &RewardPool{
		Kind:    kind,
		Version: version,
		Entries: make([]Entry, 0, len(entries)),
	}
	for i, e := range entries {
		if e.Weight == 0 {
			return nil, fmt.Errorf("%w: "+ErrContextEntry, domain.ErrZeroWeight, i, e.ItemID)
		}
		p.TotalWeight += uint64(e.Weight)
		p.Entries = append(p.Entries, Entry{WeightedEntry: e, CumulWeight: p.TotalWeight})
	}
	return p, nil
}

// WeightedEntries returns a copy of the raw entries in insertion order.
func (p *RewardPool) WeightedEntries() []domain.WeightedEntry {
	out := make([]domain.WeightedEntry, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.WeightedEntry
	}
	return out
}

// Select returns the item chosen by target = seed mod TotalWeight: the first
// entry whose cumulative weight exceeds target. Pure and deterministic.
func (p *RewardPool) Select(seed rng.Seed) domain.ItemID {
	return p.At(seed.Mod(p.TotalWeight)).ItemID
}

// At returns the entry covering target, which must be < TotalWeight.
func (p *RewardPool) At(target uint64) *Entry {
	lo, hi := 0, len(p.Entries)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if p.Entries[mid].CumulWeight <= target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return &p.Entries[lo]
}

// Preview is the off-chain form of Select. It must stay bit-for-bit identical.
func Preview(p *RewardPool, seed rng.Seed) domain.ItemID {
	return p.Select(seed)
}

type poolJSON struct {
	Kind    domain.PoolKind        `json:"kind"`
	Version uint64                 `json:"version"`
	Entries []domain.WeightedEntry `json:"entries"`
}

// MarshalJSON stores only the raw entries; cumulative weights are rebuilt on load.
func (p *RewardPool) MarshalJSON() ([]byte, error) {
	return json.Marshal(poolJSON{Kind: p.Kind, Version: p.Version, Entries: p.WeightedEntries()})
}

// UnmarshalJSON rebuilds and revalidates the pool.
func (p *RewardPool) UnmarshalJSON(data []byte) error {
	var raw poolJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	built, err := New(raw.Kind, raw.Version, raw.Entries)
	if err != nil {
		return err
	}
	*p = *built
	return nil
}
