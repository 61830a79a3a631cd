package config

import "time"

const (
	// Configuration file paths
	ConfigPathRituals       = "configs/rituals.json"
	ConfigPathRitualsSchema = "configs/schemas/rituals.schema.json"
)

// Defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultVersion     = "dev"
	DefaultServiceName = "mawritual"

	DefaultPort      = "8080"
	DefaultDBSSLMode = "disable"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultChainID          = "maw-local"
	DefaultBlockInterval    = 12 * time.Second
	DefaultOperatorID       = "maw-operator"
	DefaultPreviewCacheSize = 64
	DefaultPreviewCacheTTL  = 5 * time.Minute
	DefaultSnapshotInterval = time.Minute
	DefaultSnapshotPath     = "data/state.json"

	DefaultEventMaxRetries       = 5
	DefaultEventRetryDelay       = 2 * time.Second
	DefaultEventDeadLetterPath   = "logs/event_deadletter.jsonl"
	DefaultEventLogRetentionDays = 7
	DefaultEventCleanupInterval  = time.Hour
)
