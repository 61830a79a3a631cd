package domain

// RitualKind selects which ritual wiring an action uses.
type RitualKind string

const (
	RitualPlainRelic RitualKind = "plain_relic"
	RitualCosmetic   RitualKind = "cosmetic"
	RitualConversion RitualKind = "conversion"
)

// Valid reports whether k is a known ritual kind.
func (k RitualKind) Valid() bool {
	switch k {
	case RitualPlainRelic, RitualCosmetic, RitualConversion:
		return true
	}
	return false
}

// PoolKind names a reward pool (e.g. "relic", "cosmetic_rare").
type PoolKind string

// Tier names a rarity bucket of the secondary tier distribution.
type Tier string

const (
	TierCommon Tier = "common"
	TierRare   Tier = "rare"
	TierMythic Tier = "mythic"
)

// MaxBasisPoints is 100%.
const MaxBasisPoints = 10000

// SuccessModifier is a relic's contribution to the success probability of a
// cosmetic ritual. AdditiveBps is applied per consumed unit. MultiplyOthers
// doubles every other modifier's contribution. BiasBps shifts the tier
// distribution toward rarer tiers; Guarantee forces the highest tier.
type SuccessModifier struct {
	ItemID         ItemID `json:"item_id" yaml:"item_id"`
	AdditiveBps    int32  `json:"additive_bps" yaml:"additive_bps"`
	MultiplyOthers bool   `json:"multiply_others,omitempty" yaml:"multiply_others"`
	BiasBps        int32  `json:"bias_bps,omitempty" yaml:"bias_bps"`
	Guarantee      bool   `json:"guarantee,omitempty" yaml:"guarantee"`
}

// RitualConfig carries the per-kind wiring so every ritual runs through the
// same orchestrator code path.
type RitualConfig struct {
	Kind RitualKind `json:"kind" yaml:"kind"`

	// InputItem is burned by plain and cosmetic rituals.
	InputItem ItemID `json:"input_item" yaml:"input_item"`

	// BonusItem is the optional secondary input of the cosmetic ritual.
	BonusItem ItemID `json:"bonus_item,omitempty" yaml:"bonus_item"`

	// ConsumeBonus burns the bonus input. When false the bonus only needs to
	// be held and acts as a bias input.
	ConsumeBonus bool `json:"consume_bonus" yaml:"consume_bonus"`

	// Pool is the reward pool drawn on success.
	Pool PoolKind `json:"pool,omitempty" yaml:"pool"`

	// TierPools maps a rolled tier to its pool. Empty means a single draw from Pool.
	TierPools map[Tier]PoolKind `json:"tier_pools,omitempty" yaml:"tier_pools"`

	// FallbackItem is minted when the rolled reward cannot be minted.
	FallbackItem ItemID `json:"fallback_item" yaml:"fallback_item"`

	// ConsolationItem is minted when a cosmetic ritual fails its success roll.
	ConsolationItem ItemID `json:"consolation_item,omitempty" yaml:"consolation_item"`

	// RewardAmount is how many units of the selected reward are minted.
	RewardAmount uint64 `json:"reward_amount" yaml:"reward_amount"`

	// MaxAmount caps the primary input per action. Zero means no cap.
	MaxAmount uint64 `json:"max_amount,omitempty" yaml:"max_amount"`

	// CooldownExempt skips the per-actor spacing check.
	CooldownExempt bool `json:"cooldown_exempt,omitempty" yaml:"cooldown_exempt"`
}

// ActionContext is the opaque input mixed into a seed.
type ActionContext struct {
	Actor   Actor
	Kind    RitualKind
	Amount  uint64
	Purpose string
}

// ChainEntropy is the weak entropy the chain exposes to an action.
type ChainEntropy struct {
	Height    int64    `json:"height"`
	Timestamp int64    `json:"timestamp"`
	BlockHash [32]byte `json:"block_hash"`
}
