package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"mercator-hq/blocklint/pkg/bem/diagnostic"
	"mercator-hq/blocklint/pkg/bem/lint"
	"mercator-hq/blocklint/pkg/bem/parser"
	"mercator-hq/blocklint/pkg/config"
	"mercator-hq/blocklint/pkg/history"
	"mercator-hq/blocklint/pkg/telemetry/logging"
	"mercator-hq/blocklint/pkg/telemetry/metrics"
	"mercator-hq/blocklint/pkg/telemetry/tracing"
)

// Recorder stores finished runs. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, run *history.Run) error
}

// Options carries the optional collaborators of an Engine. Nil fields are
// replaced with no-op implementations.
type Options struct {
	Logger   *slog.Logger
	Metrics  *metrics.Collector
	Tracer   *tracing.Tracer
	Recorder Recorder
}

// Engine runs validations. Every run allocates its own rule state, so one
// Engine can lint many documents concurrently.
type Engine struct {
	enabled  bool
	maxSize  int64
	linter   *lint.Linter
	diagOpts diagnostic.Options

	logger   *slog.Logger
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	recorder Recorder
	now      func() time.Time
}

// New creates an engine for the lint section of a validated configuration.
func New(cfg *config.LintConfig, opts Options) *Engine {
	if cfg == nil {
		cfg = &config.Default().Lint
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := parser.NewParser().
		WithMaxSize(cfg.MaxFileSize).
		WithMaxDepth(cfg.MaxDepth)

	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = config.DefaultMaxFileSize
	}

	return &Engine{
		enabled:  cfg.Enable,
		maxSize:  maxSize,
		linter:   lint.NewLinter().WithParser(p),
		diagOpts: cfg.DiagnosticOptions(),
		logger:   logger.With("component", "engine"),
		metrics:  opts.Metrics,
		tracer:   opts.Tracer,
		recorder: opts.Recorder,
		now:      time.Now,
	}
}

// Options returns the diagnostic options the engine assembles with.
func (e *Engine) Options() diagnostic.Options {
	return e.diagOpts
}

// Lint validates text as the document at uri. A document that is not valid
// JSON is not an error: the result carries ParseErr and no diagnostics.
func (e *Engine) Lint(ctx context.Context, uri string, text []byte) *Result {
	start := e.now()
	runID := uuid.New().String()

	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithFile(ctx, uri)
	ctx, span := e.tracer.Start(ctx, "blocklint.lint")
	defer span.End()
	tracing.SetDocumentAttributes(span, runID, uri, len(text))

	result := &Result{
		RunID:     runID,
		Document:  diagnostic.NewDocument(uri, text),
		StartedAt: start,
	}

	if !e.enabled {
		result.Disabled = true
		result.Diagnostics = []diagnostic.Diagnostic{}
		result.Duration = e.now().Sub(start)
		e.metrics.RecordRun(metrics.OutcomeDisabled, result.Duration, len(text))
		e.logger.DebugContext(ctx, "linting disabled, no diagnostics published")
		tracing.SetOK(span)
		return result
	}

	e.logger.DebugContext(ctx, "lint run started", "bytes", len(text))

	lintResult := e.linter.Lint(text, uri)
	if lintResult.ParseErr != nil {
		result.ParseErr = lintResult.ParseErr
		result.Diagnostics = []diagnostic.Diagnostic{}
		result.Duration = e.now().Sub(start)
		e.metrics.RecordRun(metrics.OutcomeParseError, result.Duration, len(text))
		e.logger.DebugContext(ctx, "document is not valid JSON", "error", lintResult.ParseErr)
		tracing.SetError(span, lintResult.ParseErr)
		e.record(ctx, result)
		return result
	}

	result.Diagnostics = diagnostic.Assemble(lintResult.Problems, result.Document, e.diagOpts)
	result.Dropped = len(lintResult.Problems) - len(result.Diagnostics)
	result.Duration = e.now().Sub(start)

	if result.Dropped > 0 {
		for _, p := range lintResult.Problems {
			if _, ok := e.diagOpts.Severity[p.Key].Level(e.diagOpts.CorrectErrorSeverity); !ok {
				e.metrics.RecordDropped(string(p.Key))
			}
		}
	}
	for _, d := range result.Diagnostics {
		e.metrics.RecordDiagnostic(string(d.Rule), d.Severity.String())
	}
	e.metrics.RecordRun(metrics.OutcomeOK, result.Duration, len(text))

	tracing.SetResultAttributes(span, len(result.Diagnostics), result.Dropped)
	tracing.SetOK(span)

	e.logger.DebugContext(ctx, "lint run finished",
		"diagnostics", len(result.Diagnostics),
		"dropped", result.Dropped,
		"duration", result.Duration,
	)

	e.record(ctx, result)
	return result
}

// LintFile reads path and lints it. Only a failure to read the file is
// returned as an error.
func (e *Engine) LintFile(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		e.metrics.RecordRun(metrics.OutcomeReadError, 0, 0)
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.Size() > e.maxSize {
		e.metrics.RecordRun(metrics.OutcomeReadError, 0, int(info.Size()))
		return nil, fmt.Errorf("file %s is %d bytes, maximum is %d", path, info.Size(), e.maxSize)
	}

	text, err := os.ReadFile(path)
	if err != nil {
		e.metrics.RecordRun(metrics.OutcomeReadError, 0, 0)
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return e.Lint(ctx, path, text), nil
}

// record stores the run when history is configured. Storage failures are
// logged and never fail the run.
func (e *Engine) record(ctx context.Context, result *Result) {
	if e.recorder == nil {
		return
	}

	run := &history.Run{
		ID:          result.RunID,
		File:        result.Document.URI,
		StartedAt:   result.StartedAt,
		Duration:    result.Duration,
		Diagnostics: len(result.Diagnostics),
		RuleCounts:  result.RuleCounts(),
	}
	if result.ParseErr != nil {
		run.ParseError = result.ParseErr.Error()
	}

	if err := e.recorder.Record(ctx, run); err != nil {
		e.logger.ErrorContext(ctx, "failed to record lint run", "error", err)
	}
}
