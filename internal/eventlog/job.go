package eventlog

import (
	"context"
	"time"

	"github.com/osse101/MawRitual_Go/internal/logger"
)

// Cleaner deletes logged events older than a number of days
type Cleaner interface {
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

// CleanupJob is the worker job that enforces event log retention
type CleanupJob struct {
	cleaner       Cleaner
	retentionDays int
}

// NewCleanupJob keeps retentionDays of history. Zero or less disables it.
func NewCleanupJob(cleaner Cleaner, retentionDays int) *CleanupJob {
	return &CleanupJob{cleaner: cleaner, retentionDays: retentionDays}
}

func (j *CleanupJob) String() string { return CleanupJobName }

// Process implements worker.Job
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With(LogFieldRetentionDays, j.retentionDays)
	if j.retentionDays <= 0 {
		log.Debug(LogMsgCleanupJobDisabled)
		return nil
	}

	start := time.Now()
	deleted, err := j.cleaner.CleanupOldEvents(ctx, j.retentionDays)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, LogFieldError, err, LogFieldDuration, time.Since(start))
		return err
	}
	if deleted > 0 {
		log.Info(LogMsgCleanupJobCompleted, LogFieldDeletedCount, deleted, LogFieldDuration, time.Since(start))
	} else {
		log.Debug(LogMsgCleanupJobCompleted, LogFieldDeletedCount, deleted)
	}
	return nil
}
