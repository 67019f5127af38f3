package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs background jobs on fixed intervals. A run that is still busy
// when the next tick fires is rescheduled instead of overlapping.
type Scheduler struct {
	s   gocron.Scheduler
	ctx context.Context
}

// New binds every job run to ctx; cancel it to stop in-flight work.
func New(ctx context.Context) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}
	return &Scheduler{s: s, ctx: ctx}, nil
}

// Every registers run to fire immediately and then every interval.
func (s *Scheduler) Every(name string, interval time.Duration, run func(ctx context.Context) error) error {
	_, err := s.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if s.ctx.Err() != nil {
				return
			}
			started := time.Now()
			if err := run(s.ctx); err != nil {
				slog.Error("job failed", "job", name, "err", err)
				return
			}
			slog.Debug("job done", "job", name, "took", time.Since(started))
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	return err
}

func (s *Scheduler) Start() { s.s.Start() }

// Shutdown waits for running jobs to return.
func (s *Scheduler) Shutdown() error { return s.s.Shutdown() }
