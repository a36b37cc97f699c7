package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/blocklint/pkg/config"
)

// HistoryMetrics tracks run history retention.
type HistoryMetrics struct {
	prunedTotal   prometheus.Counter
	pruneFailures prometheus.Counter
}

// NewHistoryMetrics creates and registers history metrics.
func NewHistoryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HistoryMetrics {
	hm := &HistoryMetrics{
		prunedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "history_pruned_runs_total",
			Help:      "Total number of history records deleted by retention",
		}),
		pruneFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "history_prune_failures_total",
			Help:      "Total number of failed pruning passes",
		}),
	}

	registry.MustRegister(hm.prunedTotal, hm.pruneFailures)
	return hm
}

// RecordPrune records the result of one pruning pass.
func (hm *HistoryMetrics) RecordPrune(deleted int64, err error) {
	if err != nil {
		hm.pruneFailures.Inc()
		return
	}
	hm.prunedTotal.Add(float64(deleted))
}
