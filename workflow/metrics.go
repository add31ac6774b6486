package workflow

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripmesh_stage_duration_seconds",
		Help:    "Duration of individual stage collaborator calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage", "outcome"})

	loopIterations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripmesh_loop_iterations_total",
		Help: "Total body passes executed by loop groups",
	}, []string{"loop"})

	loopOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripmesh_loop_outcomes_total",
		Help: "Terminal loop states by loop group",
	}, []string{"loop", "state"})
)

func observeStage(stage string, dur time.Duration, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	stageDuration.WithLabelValues(stage, outcome).Observe(dur.Seconds())
}

func observeLoop(loop string, state LoopState, iters int) {
	loopIterations.WithLabelValues(loop).Add(float64(iters))
	loopOutcomes.WithLabelValues(loop, state.String()).Inc()
}
