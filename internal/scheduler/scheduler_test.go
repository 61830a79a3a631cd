package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MawRitual_Go/internal/testing/leaktest"
	"github.com/osse101/MawRitual_Go/internal/worker"
)

// countingJob signals every run
type countingJob struct {
	runs atomic.Int32
	done chan struct{}
}

func (m *countingJob) Process(ctx context.Context) error {
	m.runs.Add(1)
	select {
	case m.done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler_FakeClock(t *testing.T) {
	leaktest.VerifyNone(t)
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	clock := clockwork.NewFakeClock()
	sched := NewWithClock(pool, clock)
	defer sched.Stop()

	job := &countingJob{done: make(chan struct{}, 10)}
	sched.Schedule(time.Minute, job)

	for i := 0; i < 2; i++ {
		require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
		clock.Advance(time.Minute)
		select {
		case <-job.done:
		case <-time.After(time.Second):
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, job.runs.Load(), int32(2))
}

func TestScheduler_RealClock(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &countingJob{done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	select {
	case <-job.done:
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for job execution")
	}

	sched.Stop()
	sched.Stop()
}

type recordingQueue struct {
	jobs atomic.Int32
}

func (q *recordingQueue) TryEnqueue(worker.Job) bool {
	q.jobs.Add(1)
	return true
}

func TestScheduler_DisabledInterval(t *testing.T) {
	q := &recordingQueue{}
	clock := clockwork.NewFakeClock()
	sched := NewWithClock(q, clock)

	assert.False(t, sched.Schedule(0, &countingJob{}))
	assert.False(t, sched.Schedule(-time.Second, &countingJob{}))
	assert.True(t, sched.Schedule(time.Second, &countingJob{}))

	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return q.jobs.Load() == 1 }, time.Second, time.Millisecond)

	sched.Stop()
}
