package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mercator-hq/blocklint/pkg/cli"
	"mercator-hq/blocklint/pkg/config"
	"mercator-hq/blocklint/pkg/engine"
)

var lintFlags struct {
	files    []string
	dirs     []string
	format   string
	color    string
	strict   bool
	watch    bool
	jobs     int
	all      bool
	progress bool
}

var lintCmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Lint block documents",
	Long: `Lint JSON block documents and report diagnostics.

Each document is parsed and walked by the rule set; problems are mapped to
the severities configured in lint.severity and reported with one-based
line:column positions. A document that is not valid JSON yields no
diagnostics and is reported as a parse error.

Exit codes:
  0  no failing diagnostics
  1  diagnostics at level error were published, or any with --strict
  2  usage, configuration or I/O error

Examples:
  # Lint single file
  blocklint lint --file page.json

  # Lint directories recursively, 8 files at a time
  blocklint lint --dir pages/ --dir blocks/ --jobs 8

  # Strict mode (any diagnostic fails the run)
  blocklint lint --file page.json --strict

  # JSON output for CI/CD
  blocklint lint --dir pages/ --format json

  # Language server notifications on every save
  blocklint lint --dir pages/ --watch --format lsp --all`,
	RunE: lintDocuments,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringArrayVarP(&lintFlags.files, "file", "f", nil, "document to lint (repeatable)")
	lintCmd.Flags().StringArrayVarP(&lintFlags.dirs, "dir", "d", nil, "directory to lint recursively (repeatable)")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json, lsp")
	lintCmd.Flags().StringVar(&lintFlags.color, "color", "auto", "colour text output: auto, always, never")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "fail on any diagnostic or parse error")
	lintCmd.Flags().BoolVarP(&lintFlags.watch, "watch", "w", false, "re-lint documents when they change")
	lintCmd.Flags().IntVarP(&lintFlags.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "documents linted in parallel")
	lintCmd.Flags().BoolVar(&lintFlags.all, "all", false, "publish documents without diagnostics in lsp format")
	lintCmd.Flags().BoolVar(&lintFlags.progress, "progress", false, "show a progress bar on stderr")
}

func lintDocuments(cmd *cobra.Command, args []string) error {
	files := append(append([]string{}, lintFlags.files...), args...)
	if len(files) == 0 && len(lintFlags.dirs) == 0 {
		return cli.NewCommandError("lint", fmt.Errorf("either --file or --dir must be specified"))
	}

	format, err := cli.ParseFormat(lintFlags.format)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	docs, err := collectDocuments(files, lintFlags.dirs, cfg.Watch.Extensions)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	if len(docs) == 0 && !lintFlags.watch {
		return cli.NewCommandError("lint", fmt.Errorf("no documents found"))
	}

	svc, err := newServices(cfg, cmd.ErrOrStderr())
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	defer svc.Close()

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd))
	defer stop()

	out := cmd.OutOrStdout()
	reporter, err := cli.NewReporter(format, out, cli.ReporterOptions{
		Color:        cli.UseColor(out, cli.ColorMode(lintFlags.color)),
		PublishEmpty: lintFlags.all,
	})
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	var progress *cli.Progress
	if lintFlags.progress && len(docs) > 1 {
		progress = cli.NewProgress(cmd.ErrOrStderr(), len(docs))
	}

	eng := svc.newEngine(cfg)
	if err := lintBatch(ctx, eng, reporter, docs, lintFlags.jobs, progress); err != nil {
		return cli.NewCommandError("lint", err)
	}

	if lintFlags.watch {
		paths := append(append([]string{}, files...), lintFlags.dirs...)
		if err := runWatch(ctx, cfg, svc, reporter, paths); err != nil {
			return cli.NewCommandError("lint", err)
		}
	}

	if err := reporter.Close(); err != nil {
		return cli.NewCommandError("lint", err)
	}

	summary := reporter.Summary()
	svc.logger.Debug("lint finished",
		"files", summary.Files,
		"problems", summary.Problems(),
		"errors", summary.Errors,
	)
	if !lintFlags.watch && summary.Failed(lintFlags.strict) {
		return cli.NewCommandError("lint", cli.ErrProblemsFound)
	}
	return nil
}

// lintBatch lints docs with up to jobs runs in flight and reports the
// results in input order.
func lintBatch(ctx context.Context, eng *engine.Engine, reporter cli.Reporter, docs []string, jobs int, progress *cli.Progress) error {
	type outcome struct {
		result *engine.Result
		err    error
	}
	outcomes := make([]outcome, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)

	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := eng.LintFile(gctx, doc)
			outcomes[i] = outcome{result: res, err: err}
			if progress != nil {
				progress.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if progress != nil {
		progress.Finish()
	}

	for i, o := range outcomes {
		var err error
		if o.err != nil {
			err = reporter.ReportError(docs[i], o.err)
		} else {
			err = reporter.Report(ctx, o.result)
		}
		if err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	return nil
}

// collectDocuments returns the explicit files followed by the files under
// dirs whose extension is in extensions, without duplicates. Hidden
// directories are skipped.
func collectDocuments(files, dirs, extensions []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			out = append(out, clean)
		}
	}

	for _, f := range files {
		add(f)
	}

	for _, dir := range dirs {
		var found []string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != dir && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExtension(path, extensions) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list documents in %s: %w", dir, err)
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}

	return out, nil
}

func hasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		extensions = config.DefaultWatchExtensions
	}
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// configFileExists reports whether the --config file is present, so that
// watch mode only follows a file that can be reloaded.
func configFileExists() bool {
	info, err := os.Stat(cfgFile)
	return err == nil && !info.IsDir()
}
