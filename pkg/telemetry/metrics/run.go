package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/blocklint/pkg/config"
)

// RunMetrics tracks lint runs.
//
// Metrics:
//   - blocklint_lint_runs_total: runs by outcome
//   - blocklint_lint_run_duration_seconds: parse plus rule walk duration
//   - blocklint_lint_document_bytes: size of linted documents
type RunMetrics struct {
	runsTotal     *prometheus.CounterVec
	runDuration   prometheus.Histogram
	documentBytes prometheus.Histogram
}

// NewRunMetrics creates and registers run metrics with the provided registry.
func NewRunMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of lint runs by outcome",
			},
			[]string{"outcome"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of lint runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to 2.6s
			},
		),

		documentBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "document_bytes",
				Help:      "Size of linted documents in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 9), // 256B to 16MB
			},
		),
	}

	registry.MustRegister(rm.runsTotal, rm.runDuration, rm.documentBytes)
	return rm
}

// RecordRun records one run.
func (rm *RunMetrics) RecordRun(outcome string, duration time.Duration, size int) {
	rm.runsTotal.WithLabelValues(outcome).Inc()
	rm.runDuration.Observe(duration.Seconds())
	rm.documentBytes.Observe(float64(size))
}
