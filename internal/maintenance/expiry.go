package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/assetdesk/assetdesk/internal/metrics"
)

type requestExpirer interface {
	ExpirePendingDeletionRequestsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ExpiryRunner closes deletion requests that have sat pending for longer
// than MaxAge, so the review queue only holds requests someone still cares
// about.
type ExpiryRunner struct {
	Store  requestExpirer
	MaxAge time.Duration
}

func (r *ExpiryRunner) RunOnce(ctx context.Context) error {
	if r.Store == nil || r.MaxAge <= 0 {
		return nil
	}

	start := time.Now()
	expired, err := r.Store.ExpirePendingDeletionRequestsBefore(ctx, start.Add(-r.MaxAge))
	metrics.ExpirySweepDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	if expired > 0 {
		metrics.ExpirySweepExpiredTotal.Add(float64(expired))
		slog.Info("expired stale deletion requests", "count", expired, "older_than", r.MaxAge.String())
	}
	return nil
}
