package domain

// ItemID identifies a fungible or semi-fungible item class on the ledger.
// IDs carry no ordering; the ledger enforces uniqueness.
type ItemID uint64

// Actor is the account performing a ritual.
type Actor string

// ItemAmount pairs an item class with a quantity.
type ItemAmount struct {
	ItemID ItemID `json:"item_id"`
	Amount uint64 `json:"amount"`
}

// WeightedEntry is one candidate reward inside a pool.
type WeightedEntry struct {
	ItemID ItemID `json:"item_id" yaml:"item_id"`
	Weight uint32 `json:"weight" yaml:"weight"`
}

// SupplyCounter tracks how many units of an item were minted by the engine.
// Max == nil means the item is unlimited.
type SupplyCounter struct {
	Minted uint64  `json:"minted"`
	Max    *uint64 `json:"max,omitempty"`
}

// Remaining returns how many more units can be minted and whether the item is capped.
func (s SupplyCounter) Remaining() (uint64, bool) {
	if s.Max == nil {
		return 0, false
	}
	if s.Minted >= *s.Max {
		return 0, true
	}
	return *s.Max - s.Minted, true
}

// CanMint reports whether amount more units fit under the cap.
func (s SupplyCounter) CanMint(amount uint64) bool {
	remaining, capped := s.Remaining()
	return !capped || amount <= remaining
}

// CooldownRecord stores the height of an actor's last accepted action.
type CooldownRecord struct {
	LastActionHeight int64 `json:"last_action_height"`
}

// ConversionRule is a fixed integer exchange: every Denominator units of Input
// yield Numerator units of Output. Fallback is minted instead of Output when
// Output is sold out.
type ConversionRule struct {
	Input       ItemID `json:"input" yaml:"input"`
	Output      ItemID `json:"output" yaml:"output"`
	Numerator   uint64 `json:"numerator" yaml:"numerator"`
	Denominator uint64 `json:"denominator" yaml:"denominator"`
	Fallback    ItemID `json:"fallback" yaml:"fallback"`
}

// Validate checks the ratio is usable.
func (r ConversionRule) Validate() error {
	if r.Numerator == 0 || r.Denominator == 0 {
		return ErrInvalidRatio
	}
	return nil
}

// OutputFor returns the exact output for amount, rejecting amounts that are
// not a multiple of the denominator. Nothing is ever rounded.
func (r ConversionRule) OutputFor(amount uint64) (uint64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	if amount == 0 || amount%r.Denominator != 0 {
		return 0, ErrInvalidAmount
	}
	batches := amount / r.Denominator
	out := batches * r.Numerator
	if out/r.Numerator != batches {
		return 0, ErrInvalidAmount
	}
	return out, nil
}
