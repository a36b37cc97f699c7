package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/blocklint/pkg/cli"
	"mercator-hq/blocklint/pkg/config"
	"mercator-hq/blocklint/pkg/engine"
	"mercator-hq/blocklint/pkg/history"
	"mercator-hq/blocklint/pkg/telemetry/health"
	"mercator-hq/blocklint/pkg/telemetry/logging"
	"mercator-hq/blocklint/pkg/telemetry/metrics"
	"mercator-hq/blocklint/pkg/telemetry/tracing"
)

// loadConfig loads the configuration file (defaults when it is missing),
// applies the global flag overrides and stores it as the global config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Initialize(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError(cfgFile, err)
	}
	applyFlagOverrides(cfg)
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Telemetry.Logging.Format = logFormat
	}
}

// commandContext returns the command's context, or a background context
// when the command was invoked directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// newLogger builds the process logger on w and makes it the default.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
		Writer: w,
	})
	if err != nil {
		return nil, cli.NewConfigError(cfgFile, err)
	}
	slog.SetDefault(logger)
	return logger, nil
}

// services holds what a lint run needs besides the configuration.
type services struct {
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	store   *history.Store
}

// newServices builds the logger, metrics collector, tracer and, when
// enabled, the history store.
func newServices(cfg *config.Config, logOut io.Writer) (*services, error) {
	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	s := &services{
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
		tracer:  tracer,
	}

	if cfg.History.Enabled {
		storeCfg := history.DefaultStoreConfig(cfg.History.Path)
		storeCfg.Logger = logger
		store, err := history.Open(storeCfg)
		if err != nil {
			tracer.Shutdown(context.Background())
			return nil, err
		}
		s.store = store
	}

	return s, nil
}

// newEngine creates an engine for cfg wired to the services.
func (s *services) newEngine(cfg *config.Config) *engine.Engine {
	opts := engine.Options{
		Logger:  s.logger,
		Metrics: s.metrics,
		Tracer:  s.tracer,
	}
	if s.store != nil {
		opts.Recorder = s.store
	}
	return engine.New(&cfg.Lint, opts)
}

// serveMetrics exposes the Prometheus endpoint and the health endpoints until
// ctx is cancelled.
func (s *services) serveMetrics(ctx context.Context, cfg *config.MetricsConfig) {
	if !cfg.Enabled {
		return
	}

	checker := health.New(2 * time.Second)
	checker.RegisterCheck("config", func(ctx context.Context) error {
		if config.GetConfig() == nil {
			return errors.New("configuration not loaded")
		}
		return nil
	})
	if s.store != nil {
		checker.RegisterCheck("history", s.store.Ping)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, s.metrics.Handler())
	health.Register(mux, checker, Version, GitCommit, BuildDate)
	srv := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		s.logger.Info("metrics endpoint listening", "address", cfg.ListenAddress, "path", cfg.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}()
}

// startPruner schedules history pruning until ctx is cancelled.
func (s *services) startPruner(ctx context.Context, cfg *config.HistoryConfig) (*history.Scheduler, error) {
	if s.store == nil {
		return nil, nil
	}
	scheduler := history.NewScheduler(history.NewPruner(s.store, cfg.RetentionDays), cfg.PruneSchedule)
	scheduler.OnPrune = s.metrics.RecordPrune
	if err := scheduler.Start(ctx); err != nil {
		return nil, err
	}
	if next := scheduler.NextRun(); next != nil {
		s.logger.Info("history pruning scheduled", "schedule", cfg.PruneSchedule, "next_run", next.Format(time.RFC3339))
	}
	return scheduler, nil
}

// Close flushes traces and closes the history store.
func (s *services) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.tracer.Shutdown(ctx); err != nil {
		s.logger.Warn("failed to flush traces", "error", err)
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("failed to close history store", "error", err)
		}
	}
}
