package pool

import "github.com/osse101/MawRitual_Go/internal/domain"

// ItemOdds is the display probability of one pool entry.
type ItemOdds struct {
	ItemID domain.ItemID `json:"item_id"`
	Weight uint32        `json:"weight"`
	Bps    uint32        `json:"bps"`
}

// Odds converts weights to basis points. The rounding remainder goes to the
// largest entry (first one on ties) so the total is exactly 10000.
func Odds(p *RewardPool) []ItemOdds {
	out := make([]ItemOdds, len(p.Entries))
	var sum uint64
	largest := 0
	for i, e := range p.Entries {
		bps := uint64(e.Weight) * domain.MaxBasisPoints / p.TotalWeight
		out[i] = ItemOdds{ItemID: e.ItemID, Weight: e.Weight, Bps: uint32(bps)}
		sum += bps
		if e.Weight > p.Entries[largest].Weight {
			largest = i
		}
	}
	out[largest].Bps += uint32(domain.MaxBasisPoints - sum)
	return out
}
