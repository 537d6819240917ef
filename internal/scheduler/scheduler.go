package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler re-runs the news pipeline on a cron spec so requests are
// served from a warm cache.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	timeout   time.Duration
}

func New(spec string, refresher Refresher, timeout time.Duration) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	s := &Scheduler{
		cron:      c,
		refresher: refresher,
		timeout:   timeout,
	}

	_, err := c.AddFunc(spec, s.RunOnce)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	go s.RunOnce()
}

// Stop halts the schedule and returns a context that is done once a
// running refresh has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) RunOnce() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.refresher.Refresh(ctx); err != nil {
		slog.Error("scheduled news refresh failed", "error", err)
		return
	}
	slog.Info("scheduled news refresh done", "duration", time.Since(start))
}
