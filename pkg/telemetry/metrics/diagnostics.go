package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/blocklint/pkg/config"
)

// DiagnosticMetrics tracks rule output.
//
// Metrics:
//   - blocklint_lint_diagnostics_total: published diagnostics by rule and level
//   - blocklint_lint_problems_dropped_total: problems of rules without a severity
type DiagnosticMetrics struct {
	publishedTotal *prometheus.CounterVec
	droppedTotal   *prometheus.CounterVec
}

// NewDiagnosticMetrics creates and registers diagnostic metrics.
func NewDiagnosticMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DiagnosticMetrics {
	dm := &DiagnosticMetrics{
		publishedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "diagnostics_total",
				Help:      "Total number of published diagnostics",
			},
			[]string{"rule", "level"},
		),
		droppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "problems_dropped_total",
				Help:      "Total number of problems dropped because their rule is disabled",
			},
			[]string{"rule"},
		),
	}

	registry.MustRegister(dm.publishedTotal, dm.droppedTotal)
	return dm
}

// RecordPublished counts a published diagnostic.
func (dm *DiagnosticMetrics) RecordPublished(rule, level string) {
	dm.publishedTotal.WithLabelValues(rule, level).Inc()
}

// RecordDropped counts a dropped problem.
func (dm *DiagnosticMetrics) RecordDropped(rule string) {
	dm.droppedTotal.WithLabelValues(rule).Inc()
}
