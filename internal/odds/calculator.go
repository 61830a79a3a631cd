package odds

import (
	"github.com/osse101/MawRitual_Go/internal/domain"
)

// Contribution is a modifier together with how many units of its item were consumed.
type Contribution struct {
	Modifier domain.SuccessModifier
	Units    uint64
}

// ComputeBps returns base plus every additive contribution, clamped to
// [0, maxBps]. When an amplifier (MultiplyOthers) is among the contributions
// every other contribution counts twice; the base is never doubled.
func ComputeBps(baseBps uint32, contributions []Contribution, maxBps uint32) uint32 {
	if maxBps > domain.MaxBasisPoints {
		maxBps = domain.MaxBasisPoints
	}

	amplified := false
	for _, c := range contributions {
		if c.Modifier.MultiplyOthers && c.Units > 0 {
			amplified = true
			break
		}
	}

	total := int64(baseBps)
	for _, c := range contributions {
		add := int64(c.Modifier.AdditiveBps) * int64(saturateUnits(c.Units))
		if amplified && !c.Modifier.MultiplyOthers {
			add *= 2
		}
		total += add
	}

	switch {
	case total < 0:
		return 0
	case total > int64(maxBps):
		return maxBps
	default:
		return uint32(total)
	}
}

// saturateUnits bounds per-unit multiplication. Any non-zero modifier times
// MaxBasisPoints units already pushes the sum past every clamp.
func saturateUnits(units uint64) uint64 {
	if units > domain.MaxBasisPoints {
		return domain.MaxBasisPoints
	}
	return units
}
