package coordinator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripmesh_runs_total",
		Help: "Total coordinator runs by terminal status",
	}, []string{"status"})

	runAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripmesh_run_attempts_total",
		Help: "Total pipeline attempts including retries",
	})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tripmesh_run_duration_seconds",
		Help:    "End-to-end duration of coordinator runs",
		Buckets: prometheus.DefBuckets,
	})
)

func observeRun(status string, attempts int, elapsed time.Duration) {
	runsTotal.WithLabelValues(status).Inc()
	runAttempts.Add(float64(attempts))
	runDuration.Observe(elapsed.Seconds())
}
