package worker

import "time"

const (
	LogMsgWorkerJobFailed    = "Background job failed"
	LogMsgWorkerJobCompleted = "Background job finished"
	LogMsgWorkerQueueFull    = "Background queue full, dropping job"
)

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 30 * time.Second
