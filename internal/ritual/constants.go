package ritual

import "time"

// Phase is a state of the per-action state machine.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseBurning    Phase = "burning"
	PhaseRolling    Phase = "rolling"
	PhaseMinting    Phase = "minting"
	PhaseEmitting   Phase = "emitting"
	PhaseDone       Phase = "done"
)

// Outcome is how an action that did not reach PhaseDone ended.
type Outcome string

const (
	// OutcomeRejected means validation failed and nothing was mutated
	OutcomeRejected Outcome = "rejected"
	// OutcomeAborted means a ledger or persistence call failed and the action was rolled back
	OutcomeAborted Outcome = "aborted"
)

// Draw purposes mixed into the seed context
const (
	PurposeReward  = "reward"
	PurposeSuccess = "success"
	PurposeTier    = "tier"
)

// Preview cache defaults
const (
	DefaultPreviewCacheSize = 64
	DefaultPreviewCacheTTL  = 5 * time.Minute
)

// Admin operation names carried by config update events
const (
	OpSetPool            = "set_pool"
	OpSetCooldownSpacing = "set_cooldown_spacing"
	OpSetConversionRatio = "set_conversion_ratio"
	OpSetConversionRule  = "set_conversion_rule"
	OpSetSupplyCap       = "set_supply_cap"
	OpSetPaused          = "set_paused"
	OpSetSuccessConfig   = "set_success_config"
	OpSetRitual          = "set_ritual"
)

// Log messages
const (
	LogMsgPhaseTransition    = "Ritual phase transition"
	LogMsgRitualCompleted    = "Ritual completed"
	LogMsgRitualRejected     = "Ritual rejected"
	LogMsgRitualAborted      = "Ritual aborted"
	LogMsgStatePersistFailed = "Failed to persist engine state after commit"
	LogMsgPublishFailed      = "Failed to publish ritual event"
	LogMsgConfigUpdated      = "Engine configuration updated"
	LogMsgStateRestored      = "Engine state restored from snapshot"
	LogMsgStateGenesis       = "No engine snapshot found, starting from genesis"
	LogMsgSnapshotSaved      = "Engine snapshot saved"
)

// Error message formats
const (
	ErrMsgAmountOverMax     = "%w: amount %d exceeds the per-action maximum %d"
	ErrMsgNoBonusItem       = "%w: ritual %s takes no bonus item"
	ErrMsgBonusNotHeld      = "%w: bonus item %d requires %d, holding %d"
	ErrMsgApprovalLookup    = "failed to check operator approval: %w"
	ErrMsgBalanceLookup     = "failed to read balances: %w"
	ErrMsgBeginTx           = "failed to begin ledger transaction: %w"
	ErrMsgBurn              = "failed to burn %d of item %d: %w"
	ErrMsgCommit            = "failed to commit ledger transaction: %w"
	ErrMsgSaveState         = "failed to save engine state: %w"
	ErrMsgNoTier            = "%w: no success tier for amount %d"
	ErrMsgNoStore           = "no state store configured"
	ErrMsgEmptyActor        = "%w: actor is required"
	ErrMsgPhase             = "ritual %s during %s: %v"
	ErrMsgUnknownTier       = "%w: unknown success tier %q"
	ErrMsgBalanceQueryItems = "%w: at least one item is required"
)
