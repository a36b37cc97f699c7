package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/blocklint/pkg/config"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeOK         = "ok"
	OutcomeParseError = "parse_error"
	OutcomeDisabled   = "disabled"
	OutcomeReadError  = "read_error"
)

// Collector owns every Prometheus metric blocklint exports. A disabled
// collector accepts all calls and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	runMetrics        *RunMetrics
	diagnosticMetrics *DiagnosticMetrics
	historyMetrics    *HistoryMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// A nil registry gets a fresh one.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	http.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:            cfg,
		registry:          registry,
		runMetrics:        NewRunMetrics(cfg, registry),
		diagnosticMetrics: NewDiagnosticMetrics(cfg, registry),
		historyMetrics:    NewHistoryMetrics(cfg, registry),
	}
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordRun records one finished lint run.
func (c *Collector) RecordRun(outcome string, duration time.Duration, size int) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.runMetrics.RecordRun(outcome, duration, size)
}

// RecordDiagnostic records a published diagnostic.
func (c *Collector) RecordDiagnostic(rule, level string) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.diagnosticMetrics.RecordPublished(rule, level)
}

// RecordDropped records a problem dropped because its rule has no
// publishable severity.
func (c *Collector) RecordDropped(rule string) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.diagnosticMetrics.RecordDropped(rule)
}

// RecordPrune records a history pruning pass.
func (c *Collector) RecordPrune(deleted int64, err error) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.historyMetrics.RecordPrune(deleted, err)
}
