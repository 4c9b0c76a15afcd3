package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "assetdesk"
)

var (
	sweepDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

	// Access gate metrics
	GateDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Access gate verdicts by route class and outcome.",
	}, []string{"route_class", "outcome"})

	// Sign-in metrics
	SignInAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_in_attempts_total",
		Help:      "Count of sign-in attempts.",
	}, []string{"result"})

	// Asset metrics
	AssetsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assets_created_total",
		Help:      "Number of assets submitted.",
	})

	AssetsDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assets_deleted_total",
		Help:      "Number of assets deleted.",
	}, []string{"via"})

	// Deletion request workflow metrics
	DeletionRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deletion_requests_total",
		Help:      "Deletion request transitions by outcome.",
	}, []string{"outcome"})

	// Maintenance metrics
	ExpirySweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "expiry_sweep_duration_seconds",
		Help:      "Time taken for one stale-request expiry sweep.",
		Buckets:   sweepDurationBuckets,
	})

	ExpirySweepExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expiry_sweep_expired_total",
		Help:      "Deletion requests closed by the expiry sweep.",
	})
)
