// Package maintenance runs the periodic housekeeping passes that keep the
// asset registry tidy, currently the stale deletion-request expiry sweep.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Runner executes a single maintenance pass.
type Runner interface {
	RunOnce(context.Context) error
}

type Scheduler struct {
	Runner   Runner
	Interval time.Duration
}

func (s *Scheduler) Run(ctx context.Context) {
	if s.Runner == nil || s.Interval <= 0 {
		return
	}

	// Run immediately at startup.
	if err := s.Runner.RunOnce(ctx); err != nil {
		slog.Error("initial maintenance pass failed", "err", err)
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Runner.RunOnce(ctx); err != nil {
				slog.Error("maintenance pass failed", "err", err)
			}
		}
	}
}
