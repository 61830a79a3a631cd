package eventlog

// Payload keys the repositories filter on
const (
	PayloadKeyActor    = "actor"
	PayloadKeyActionID = "action_id"
)

// CleanupJobName identifies the retention job in worker logs
const CleanupJobName = "eventlog-cleanup"

const (
	LogMsgEventPayloadNotMap = "Event payload is not an object, not logging it"
	LogMsgFailedToLogEvent   = "Failed to log event"
	LogMsgEventLogged        = "Event logged"

	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup finished"
	LogMsgCleanupJobDisabled  = "Event log retention disabled"
)

const (
	LogFieldType          = "type"
	LogFieldActor         = "actor"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retention_days"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deleted"
)

// Query limits
const (
	DefaultQueryLimit    = 50
	MaxQueryLimit        = 500
	DefaultMemoryEntries = 10000
)
