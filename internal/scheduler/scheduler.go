// FilePath: internal/scheduler/scheduler.go

// Package scheduler runs the periodic ingestion jobs: pulling the live
// Davis snapshot and scraping the Campbell portal. A failed tick is
// logged and reported through the event emitter; it is never retried
// before its next regular tick.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	nuts "github.com/vaudience/go-nuts"
)

// JobFunc is one scheduled unit of work.
type JobFunc func(ctx context.Context) error

// Scheduler wraps gocron with per-job success/failure events.
type Scheduler struct {
	cron   *gocron.Scheduler
	events *nuts.EventEmitter
}

func New() *Scheduler {
	return &Scheduler{
		cron:   gocron.NewScheduler(time.UTC),
		events: nuts.NewEventEmitter(),
	}
}

// Register schedules fn to run every interval under the given job name.
func (s *Scheduler) Register(name string, interval time.Duration, fn JobFunc) error {
	_, err := s.cron.Every(interval).Tag(name).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			nuts.L.Errorf("[Scheduler] Job %s failed after %s: %v", name, time.Since(start), err)
			s.events.Emit("job.failed", name, err)
			return
		}
		nuts.L.Infof("[Scheduler] Job %s completed in %s", name, time.Since(start))
		s.events.Emit("job.completed", name)
	})
	if err != nil {
		return err
	}
	nuts.L.Infof("[Scheduler] Registered job %s every %s", name, interval)
	return nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.StartAsync()
}

// Stop blocks until running jobs finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// OnJobCompleted registers a callback fired after each successful tick.
func (s *Scheduler) OnJobCompleted(handler func(name string)) {
	s.events.On("job.completed", "scheduler_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if name, ok := args[0].(string); ok {
				handler(name)
			}
		}
	})
}

// OnJobFailed registers a callback fired after each failed tick.
func (s *Scheduler) OnJobFailed(handler func(name string, err error)) {
	s.events.On("job.failed", "scheduler_handler", func(args ...interface{}) {
		if len(args) < 2 {
			return
		}
		name, ok := args[0].(string)
		if !ok {
			return
		}
		if err, ok := args[1].(error); ok {
			handler(name, err)
		}
	})
}
