package config

import (
	"time"

	"mercator-hq/blocklint/pkg/bem/diagnostic"
	"mercator-hq/blocklint/pkg/bem/lint"
)

// Config is the root configuration structure for blocklint.
type Config struct {
	// Lint controls which rules run and how their diagnostics are published.
	Lint LintConfig `yaml:"lint"`

	// Watch contains settings for `lint --watch`.
	Watch WatchConfig `yaml:"watch"`

	// History controls recording of lint runs in a local database.
	History HistoryConfig `yaml:"history"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LintConfig contains rule engine configuration.
type LintConfig struct {
	// Enable turns the whole rule set on or off. A disabled linter reports
	// nothing.
	// Default: true
	Enable bool `yaml:"enable"`

	// Locale selects the message catalog.
	// Options: "en", "ru"
	// Default: "en"
	Locale string `yaml:"locale"`

	// CorrectErrorSeverity publishes rules configured as "Error" with the
	// error level. When false they are published as information, which is
	// what existing editor setups expect.
	// Default: false
	CorrectErrorSeverity bool `yaml:"correct_error_severity"`

	// MaxFileSize is the largest document, in bytes, that will be parsed.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxDepth is the deepest object/array nesting that will be parsed.
	// Default: 512
	MaxDepth int `yaml:"max_depth"`

	// Severity maps rule keys to "Error", "Warning", "Information", "Hint"
	// or "None". When the map is present, rules left out of it are not
	// published. When it is absent, every rule uses its default severity.
	Severity map[string]string `yaml:"severity"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is how long to wait after the last change to a file before
	// linting it again.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions lists the file extensions picked up when linting or
	// watching a directory.
	// Default: [".json"]
	Extensions []string `yaml:"extensions"`
}

// HistoryConfig contains lint history configuration.
type HistoryConfig struct {
	// Enabled turns recording of lint runs on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file.
	// Default: "data/blocklint.db"
	Path string `yaml:"path"`

	// RetentionDays is how long runs are kept. 0 keeps them forever.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is the cron expression for pruning in watch mode.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and, in watch mode,
	// served over HTTP.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is where the metrics endpoint listens in watch mode.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "blocklint"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "lint"
	Subsystem string `yaml:"subsystem"`
}

// TracingConfig contains tracing configuration.
type TracingConfig struct {
	// Enabled controls whether lint runs create spans.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address. When empty, spans go to
	// the globally registered tracer provider.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS for the OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// SampleRatio is the fraction of runs to trace (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is the service name in traces.
	// Default: "blocklint"
	ServiceName string `yaml:"service_name"`
}

// SeverityConfig returns the effective severity of every rule. Without a
// severity section the defaults apply; with one, only its keys are set and
// the remaining rules are dropped. Call it on a validated config.
func (c *LintConfig) SeverityConfig() diagnostic.SeverityConfig {
	if c.Severity == nil {
		return diagnostic.DefaultSeverityConfig()
	}
	out := make(diagnostic.SeverityConfig, len(c.Severity))
	for key, value := range c.Severity {
		sev, err := diagnostic.ParseSeverity(value)
		if err != nil {
			continue
		}
		out[lint.RuleKey(key)] = sev
	}
	return out
}

// DiagnosticOptions returns the options for diagnostic.Assemble.
func (c *LintConfig) DiagnosticOptions() diagnostic.Options {
	return diagnostic.Options{
		Severity:             c.SeverityConfig(),
		Locale:               c.Locale,
		CorrectErrorSeverity: c.CorrectErrorSeverity,
	}
}
