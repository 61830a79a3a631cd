package domain

// Relic item ids of the default catalogue. Deployments may use any ids; these
// exist so configs, tests and the CLI defaults agree on a common set.
const (
	ItemRustedKey       ItemID = 1
	ItemLanternFragment ItemID = 2
	ItemWormMask        ItemID = 3
	ItemBoneDagger      ItemID = 4
	ItemAshVial         ItemID = 5
	ItemBindingContract ItemID = 6
	ItemSoulDeed        ItemID = 7
	ItemGlassShard      ItemID = 8
	ItemRustedCap       ItemID = 9
	ItemLanternGlimmer  ItemID = 10
)

// Default ritual parameters
const (
	// DefaultMaxSuccessBps caps any cosmetic success probability at 80%
	DefaultMaxSuccessBps = 8000

	// DefaultCooldownSpacing is the minimum block spacing between actions of one actor
	DefaultCooldownSpacing = 1

	// DefaultShardsPerCap is the denominator of the default shard conversion
	DefaultShardsPerCap = 5
)

// Default pool kinds
const (
	PoolRelic          PoolKind = "relic"
	PoolCosmetic       PoolKind = "cosmetic"
	PoolCosmeticRare   PoolKind = "cosmetic_rare"
	PoolCosmeticMythic PoolKind = "cosmetic_mythic"
)
