package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "ritual.completed")
const (
	// EventTypeRitualCompleted is published after a ritual action commits
	EventTypeRitualCompleted = "ritual.completed"

	// EventTypeFallbackMinted is published when the supply guard substitutes the fallback item
	EventTypeFallbackMinted = "ritual.fallback_minted"

	// EventTypeConfigUpdated is published after an admin update is applied
	EventTypeConfigUpdated = "ritual.config_updated"
)
