package config

import "time"

// Default values for configuration fields.
const (
	// Lint defaults
	DefaultLintEnable           = true
	DefaultLintLocale           = "en"
	DefaultCorrectErrorSeverity = false
	DefaultMaxFileSize          = int64(10 * 1024 * 1024) // 10MB
	DefaultMaxDepth             = 512

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// History defaults
	DefaultHistoryEnabled       = false
	DefaultHistoryPath          = "data/blocklint.db"
	DefaultHistoryRetentionDays = 30
	DefaultHistoryPruneSchedule = "0 3 * * *"

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultMetricsEnabled       = false
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultPrometheusPath       = "/metrics"
	DefaultMetricsNamespace     = "blocklint"
	DefaultMetricsSubsystem     = "lint"
	DefaultTracingEnabled       = false
	DefaultTracingServiceName   = "blocklint"
	DefaultTracingSampleRatio   = 1.0
)

// DefaultWatchExtensions is the default value of watch.extensions.
var DefaultWatchExtensions = []string{".json"}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{
		Lint: LintConfig{
			Enable:               DefaultLintEnable,
			CorrectErrorSeverity: DefaultCorrectErrorSeverity,
		},
		History: HistoryConfig{
			Enabled:       DefaultHistoryEnabled,
			RetentionDays: DefaultHistoryRetentionDays,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
			Tracing: TracingConfig{
				Enabled:     DefaultTracingEnabled,
				SampleRatio: DefaultTracingSampleRatio,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills empty fields with their default values. Booleans and
// retention_days cannot be told apart from an explicit zero here; they get
// their defaults from Default before the file is decoded.
func ApplyDefaults(cfg *Config) {
	// Lint defaults
	if cfg.Lint.Locale == "" {
		cfg.Lint.Locale = DefaultLintLocale
	}
	if cfg.Lint.MaxFileSize == 0 {
		cfg.Lint.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Lint.MaxDepth == 0 {
		cfg.Lint.MaxDepth = DefaultMaxDepth
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	// History defaults
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.PruneSchedule == "" {
		cfg.History.PruneSchedule = DefaultHistoryPruneSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
}
