package main

import (
	"context"
	"errors"
	"io/fs"
	"sync/atomic"

	"mercator-hq/blocklint/pkg/cli"
	"mercator-hq/blocklint/pkg/config"
	"mercator-hq/blocklint/pkg/engine"
	"mercator-hq/blocklint/pkg/watch"
)

// runWatch re-lints documents under paths as they change until ctx is
// cancelled. A change to the configuration file swaps in an engine built
// from the reloaded lint section; logging, metrics and history keep the
// settings they started with.
func runWatch(ctx context.Context, cfg *config.Config, svc *services, reporter cli.Reporter, paths []string) error {
	var current atomic.Pointer[engine.Engine]
	current.Store(svc.newEngine(cfg))

	svc.serveMetrics(ctx, &cfg.Telemetry.Metrics)

	scheduler, err := svc.startPruner(ctx, &cfg.History)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	watchCfg := &watch.Config{
		Paths:      paths,
		Debounce:   cfg.Watch.Debounce,
		Extensions: cfg.Watch.Extensions,
		SkipHidden: true,
	}
	if configFileExists() {
		watchCfg.ConfigFile = cfgFile
	}

	w, err := watch.New(watchCfg, svc.logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	handler := watch.Handler{
		OnChange: func(ctx context.Context, path string) {
			res, err := current.Load().LintFile(ctx, path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return
				}
				err = reporter.ReportError(path, err)
			} else {
				err = reporter.Report(ctx, res)
			}
			if err != nil {
				svc.logger.Error("failed to write results", "file", path, "error", err)
			}
		},
		OnConfigChange: func(ctx context.Context) {
			reloaded, err := config.ReloadConfig(cfgFile)
			if err != nil {
				svc.logger.Error("keeping previous configuration", "error", err)
				return
			}
			applyFlagOverrides(reloaded)
			current.Store(svc.newEngine(reloaded))
			svc.logger.Info("configuration reloaded", "path", cfgFile)
		},
	}

	return w.Run(ctx, handler)
}
