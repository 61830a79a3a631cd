package event

import "time"

// EventSchemaVersion is stamped on every event this build publishes
const EventSchemaVersion = "1.0"

// Metadata keys
const (
	MetadataKeyActor = "actor"
	MetadataKeyKind  = "kind"
)

const (
	// RetryQueueBufferSize is how many failed events wait for a retry before
	// new failures go straight to the dead-letter file
	RetryQueueBufferSize = 1000

	// MaxRetryDelay caps the exponential backoff
	MaxRetryDelay = 5 * time.Minute
)

const (
	DeadLetterFilePermissions = 0o600

	// DeadLetterMaxLineSize bounds a single entry read back by Drain
	DeadLetterMaxLineSize = 1 << 20
)

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgDeadLetterLineSkipped = "Skipping unreadable dead-letter line"

	ErrMsgHandlersFailed = "%d handlers failed for %s: %w"
)

// CalculateRetryDelay doubles baseDelay for every attempt after the first,
// up to MaxRetryDelay.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := baseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= MaxRetryDelay {
			return MaxRetryDelay
		}
	}
	return d
}
