package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielpva/bgsds-watch/app/watcher"
)

// Scheduler drives the watcher in watch mode: one check immediately, then
// one per interval. Checks are strictly sequential; a tick that arrives
// while a check is running is simply the next loop iteration, so runs can
// never overlap and race on the watermark.
type Scheduler struct {
	watcher  *watcher.Watcher
	status   *Status
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewScheduler(w *watcher.Watcher, status *Status, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		watcher:  w,
		status:   status,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runOnce()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) runOnce() {
	started := time.Now()
	report := s.watcher.Run(s.ctx)
	s.status.SetLastReport(report)

	slog.Info("Check completed",
		"outcome", report.Outcome,
		"duration", time.Since(started))
}
