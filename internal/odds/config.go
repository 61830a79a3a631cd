package odds

import (
	"fmt"
	"sort"

	"github.com/osse101/MawRitual_Go/internal/domain"
)

// SuccessTier is a base success rate that applies from MinAmount primary
// inputs upward.
type SuccessTier struct {
	Name      string `json:"name" yaml:"name"`
	MinAmount uint64 `json:"min_amount" yaml:"min_amount"`
	BaseBps   uint32 `json:"base_bps" yaml:"base_bps"`
}

// Config holds everything the success calculator needs.
type Config struct {
	MaxBps       uint32                   `json:"max_bps" yaml:"max_bps"`
	Tiers        []SuccessTier            `json:"tiers" yaml:"tiers"`
	Modifiers    []domain.SuccessModifier `json:"modifiers" yaml:"modifiers"`
	Distribution Distribution             `json:"distribution,omitempty" yaml:"distribution"`
}

// Validate checks bounds and normalises tier order.
func (c *Config) Validate() error {
	if c.MaxBps == 0 || c.MaxBps > domain.MaxBasisPoints {
		return fmt.Errorf("%w: max_bps %d outside (0, %d]", domain.ErrInvalidOdds, c.MaxBps, domain.MaxBasisPoints)
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("%w: no success tiers", domain.ErrInvalidOdds)
	}
	seen := make(map[string]bool, len(c.Tiers))
	for _, t := range c.Tiers {
		if t.Name == "" || seen[t.Name] {
			return fmt.Errorf("%w: tier name %q empty or duplicated", domain.ErrInvalidOdds, t.Name)
		}
		seen[t.Name] = true
		if t.BaseBps > domain.MaxBasisPoints {
			return fmt.Errorf("%w: tier %s base_bps %d", domain.ErrInvalidOdds, t.Name, t.BaseBps)
		}
	}
	sort.SliceStable(c.Tiers, func(i, j int) bool { return c.Tiers[i].MinAmount < c.Tiers[j].MinAmount })

	items := make(map[domain.ItemID]bool, len(c.Modifiers))
	for _, m := range c.Modifiers {
		if items[m.ItemID] {
			return fmt.Errorf("%w: duplicate modifier for item %d", domain.ErrInvalidOdds, m.ItemID)
		}
		items[m.ItemID] = true
	}

	if len(c.Distribution) > 0 {
		if err := c.Distribution.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Tier returns the named success tier.
func (c Config) Tier(name string) (SuccessTier, bool) {
	for _, t := range c.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return SuccessTier{}, false
}

// TierFor returns the tier with the largest MinAmount <= amount.
func (c Config) TierFor(amount uint64) (SuccessTier, bool) {
	var (
		best  SuccessTier
		found bool
	)
	for _, t := range c.Tiers {
		if t.MinAmount <= amount && (!found || t.MinAmount >= best.MinAmount) {
			best, found = t, true
		}
	}
	return best, found
}

// Modifier returns the modifier registered for item.
func (c Config) Modifier(item domain.ItemID) (domain.SuccessModifier, bool) {
	for _, m := range c.Modifiers {
		if m.ItemID == item {
			return m, true
		}
	}
	return domain.SuccessModifier{}, false
}

// Contributions resolves the modifiers of the items actually consumed.
// Items without a modifier contribute nothing.
func (c Config) Contributions(consumed []domain.ItemAmount) []Contribution {
	out := make([]Contribution, 0, len(consumed))
	for _, in := range consumed {
		if in.Amount == 0 {
			continue
		}
		if m, ok := c.Modifier(in.ItemID); ok {
			out = append(out, Contribution{Modifier: m, Units: in.Amount})
		}
	}
	return out
}
