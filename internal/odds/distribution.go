package odds

import (
	"fmt"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/rng"
)

// TierWeight is one bucket of the secondary tier distribution.
type TierWeight struct {
	Tier domain.Tier `json:"tier" yaml:"tier"`
	Bps  uint32      `json:"bps" yaml:"bps"`
}

// Distribution is ordered from the base (most common) tier to the highest
// tier. Weights always sum to exactly MaxBasisPoints.
type Distribution []TierWeight

// Validate checks the distribution is non-empty, has unique tiers and sums to 10000.
func (d Distribution) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("%w: empty tier distribution", domain.ErrInvalidOdds)
	}
	seen := make(map[domain.Tier]bool, len(d))
	var sum uint64
	for _, tw := range d {
		if seen[tw.Tier] {
			return fmt.Errorf("%w: duplicate tier %s", domain.ErrInvalidOdds, tw.Tier)
		}
		seen[tw.Tier] = true
		sum += uint64(tw.Bps)
	}
	if sum != domain.MaxBasisPoints {
		return fmt.Errorf("%w: tier distribution sums to %d", domain.ErrInvalidOdds, sum)
	}
	return nil
}

// Sum returns the total weight.
func (d Distribution) Sum() uint64 {
	var sum uint64
	for _, tw := range d {
		sum += uint64(tw.Bps)
	}
	return sum
}

// Highest returns the last (rarest) tier, or the zero tier for an empty distribution.
func (d Distribution) Highest() domain.Tier {
	if len(d) == 0 {
		return ""
	}
	return d[len(d)-1].Tier
}

// Pick draws a tier: target = seed mod 10000, first bucket whose cumulative
// weight exceeds target. Zero-weight buckets are never picked.
func (d Distribution) Pick(seed rng.Seed) domain.Tier {
	target := seed.Mod(domain.MaxBasisPoints)
	var cumul uint64
	for _, tw := range d {
		cumul += uint64(tw.Bps)
		if target < cumul {
			return tw.Tier
		}
	}
	return d.Highest()
}

// Redistribute scales every non-base bucket by (10000+biasBps)/10000 and lets
// the base bucket absorb the difference, so the sum stays exactly 10000. If
// the scaled buckets alone exceed 10000 they are squeezed proportionally into
// 10000 (remainder to the largest) and the base bucket drops to zero.
func Redistribute(d Distribution, biasBps int32) Distribution {
	out := make(Distribution, len(d))
	copy(out, d)
	if biasBps == 0 || len(out) < 2 {
		return out
	}

	factor := int64(domain.MaxBasisPoints) + int64(biasBps)
	if factor < 0 {
		factor = 0
	}

	scaled := make([]uint64, len(out))
	var others uint64
	for i := 1; i < len(out); i++ {
		scaled[i] = uint64(int64(out[i].Bps) * factor / domain.MaxBasisPoints)
		others += scaled[i]
	}

	if others <= domain.MaxBasisPoints {
		for i := 1; i < len(out); i++ {
			out[i].Bps = uint32(scaled[i])
		}
		out[0].Bps = uint32(domain.MaxBasisPoints - others)
		return out
	}

	// Squeeze the rarer buckets into the whole range.
	var (
		squeezed uint64
		largest  = 1
	)
	for i := 1; i < len(out); i++ {
		out[i].Bps = uint32(scaled[i] * domain.MaxBasisPoints / others)
		squeezed += uint64(out[i].Bps)
		if out[i].Bps > out[largest].Bps {
			largest = i
		}
	}
	out[largest].Bps += uint32(domain.MaxBasisPoints - squeezed)
	out[0].Bps = 0
	return out
}

// Guaranteed puts the whole distribution on the highest tier.
func Guaranteed(d Distribution) Distribution {
	out := make(Distribution, len(d))
	copy(out, d)
	if len(out) == 0 {
		return out
	}
	for i := range out {
		out[i].Bps = 0
	}
	out[len(out)-1].Bps = domain.MaxBasisPoints
	return out
}

// ApplyModifiers biases d by the consumed relics. A guarantee modifier
// short-circuits to the highest tier; otherwise bias is the sum of BiasBps per unit.
func ApplyModifiers(d Distribution, contributions []Contribution) Distribution {
	var bias int64
	for _, c := range contributions {
		if c.Units == 0 {
			continue
		}
		if c.Modifier.Guarantee {
			return Guaranteed(d)
		}
		bias += int64(c.Modifier.BiasBps) * int64(saturateUnits(c.Units))
	}
	if bias > domain.MaxBasisPoints*100 {
		bias = domain.MaxBasisPoints * 100
	}
	if bias < -domain.MaxBasisPoints {
		bias = -domain.MaxBasisPoints
	}
	return Redistribute(d, int32(bias))
}
