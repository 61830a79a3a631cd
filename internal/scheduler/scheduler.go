package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/MawRitual_Go/internal/worker"
)

// Enqueuer accepts jobs without blocking, reporting false when it is full
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler hands jobs to an Enqueuer at fixed intervals
type Scheduler struct {
	queue    Enqueuer
	clock    clockwork.Clock
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a scheduler driven by the real clock
func New(queue Enqueuer) *Scheduler {
	return NewWithClock(queue, clockwork.NewRealClock())
}

func NewWithClock(queue Enqueuer, clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		queue: queue,
		clock: clock,
		quit:  make(chan struct{}),
	}
}

// Schedule runs job every interval until Stop. A non-positive interval
// disables the job and returns false. Ticks that find the queue full are
// dropped; the queue logs them.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) bool {
	if interval <= 0 {
		slog.Debug("Scheduled job disabled", "job", job, "interval", interval)
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := s.clock.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.Chan():
				s.queue.TryEnqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
	return true
}

// Stop ends every schedule and waits for the tick loops. Safe to call twice.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
