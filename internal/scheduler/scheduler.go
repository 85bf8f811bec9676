// Package scheduler runs periodic maintenance jobs for the server process.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

const snapshotTimeout = 30 * time.Second

type snapshotter interface {
	Snapshot(ctx context.Context) (string, error)
}

// Scheduler takes periodic snapshots of the progress document.
type Scheduler struct {
	cron     *gocron.Scheduler
	store    snapshotter
	interval time.Duration
	log      *slog.Logger
}

// New creates a Scheduler. An interval <= 0 disables the snapshot job.
func New(log *slog.Logger, store snapshotter, interval time.Duration) *Scheduler {
	return &Scheduler{
		cron:     gocron.NewScheduler(time.UTC),
		store:    store,
		interval: interval,
		log:      log.With("component", "scheduler"),
	}
}

// Start registers the jobs and runs them in the background. The first
// snapshot is taken one interval after start.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("progress snapshots disabled")
		return nil
	}

	if _, err := s.cron.Every(s.interval).WaitForSchedule().SingletonMode().Do(s.snapshot); err != nil {
		return fmt.Errorf("schedule snapshot job: %w", err)
	}
	s.cron.StartAsync()

	s.log.Info("scheduler started", slog.Duration("snapshot_interval", s.interval))
	return nil
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	if s.cron.IsRunning() {
		s.cron.Stop()
	}
}

func (s *Scheduler) snapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	if _, err := s.store.Snapshot(ctx); err != nil {
		s.log.ErrorContext(ctx, "scheduled snapshot failed", slog.String("error", err.Error()))
	}
}
