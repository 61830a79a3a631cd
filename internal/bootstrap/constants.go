package bootstrap

import "time"

// Log files
const (
	DirPermission     = 0o755
	LogFilePermission = 0o640

	// LogFileTimestampFormat names one file per process start
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount excludes the file about to be opened
	LogFileRetentionCount = 9
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgLoggingStdoutOnly   = "Logging to stdout only"
	LogMsgStartingService     = "Starting MawRitual"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// Event publishing fallbacks for unset or invalid settings
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"

	// MemoryEventLogCapacity bounds the event log of the memory backend
	MemoryEventLogCapacity = 10000
)

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"

	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgDeadLettersReplayed        = "Dead-lettered events replayed"
	LogMsgDeadLetterReplayFailed     = "Failed to replay dead-lettered events"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

// Storage
const (
	LogMsgMemoryBackendSelected   = "Using in-memory ledger and state store"
	LogMsgPostgresBackendSelected = "Using Postgres ledger and state store"

	ErrMsgUnknownBackend          = "unknown storage backend %q"
	ErrMsgFailedConnectDatabase   = "failed to connect to database"
	ErrMsgFailedMigrateDatabase   = "failed to migrate database"
	ErrMsgFailedCreateSnapshotDir = "failed to create snapshot directory"
)

// Engine
const (
	LogMsgLoadingRitualConfig = "Loading ritual configuration"
	LogMsgRitualEngineReady   = "Ritual engine ready"
	LogMsgDevModeEnabled      = "DEV_MODE enabled, cooldown checks are skipped"
	LogMsgLedgerSeeded        = "Ledger seeded"

	ErrMsgFailedLoadRitualConfig = "failed to load ritual config"
	ErrMsgFailedRestoreState     = "failed to restore engine state"
	ErrMsgFailedCreateChainView  = "failed to create chain view"
	ErrMsgFailedSeedLedger       = "failed to seed ledger"
)

// Shutdown
const (
	LogMsgShuttingDown       = "Shutting down"
	LogMsgShutdownStepDone   = "Shutdown step complete"
	LogMsgShutdownStepFailed = "Shutdown step failed"
	LogMsgServerStopped      = "Server stopped"
)
