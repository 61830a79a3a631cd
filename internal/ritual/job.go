package ritual

import "context"

// SnapshotJob periodically persists the live engine state
type SnapshotJob struct {
	service Service
}

func NewSnapshotJob(service Service) *SnapshotJob {
	return &SnapshotJob{service: service}
}

func (j *SnapshotJob) String() string { return "state-snapshot" }

// Process implements worker.Job
func (j *SnapshotJob) Process(ctx context.Context) error {
	return j.service.SaveSnapshot(ctx)
}
