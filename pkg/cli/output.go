package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"mercator-hq/blocklint/pkg/bem/diagnostic"
	"mercator-hq/blocklint/pkg/bem/lsp"
	"mercator-hq/blocklint/pkg/engine"
)

// OutputFormat represents the output format for lint results.
type OutputFormat string

const (
	// FormatText is human readable output grouped by file (default).
	FormatText OutputFormat = "text"
	// FormatJSON writes one JSON object per linted document.
	FormatJSON OutputFormat = "json"
	// FormatLSP writes textDocument/publishDiagnostics notifications.
	FormatLSP OutputFormat = "lsp"
)

// ParseFormat parses an output format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON, FormatLSP:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json, lsp)", s)
	}
}

// Summary counts what a reporter has seen.
type Summary struct {
	Files         int `json:"files"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Information   int `json:"information"`
	Hints         int `json:"hints"`
	ParseFailures int `json:"parse_failures"`
	ReadFailures  int `json:"read_failures"`
}

// Problems returns the number of published diagnostics.
func (s Summary) Problems() int {
	return s.Errors + s.Warnings + s.Information + s.Hints
}

// Failed reports whether the run should exit unsuccessfully. Errors and
// unreadable files always fail; with strict, any diagnostic or invalid
// document does too.
func (s Summary) Failed(strict bool) bool {
	if s.Errors > 0 || s.ReadFailures > 0 {
		return true
	}
	return strict && (s.Problems() > 0 || s.ParseFailures > 0)
}

// Reporter writes lint results. Implementations are safe for concurrent
// use, so results can be reported as parallel runs finish.
type Reporter interface {
	// Report writes the result of one run.
	Report(ctx context.Context, result *engine.Result) error

	// ReportError records a document that could not be read.
	ReportError(path string, err error) error

	// Summary returns the counts so far.
	Summary() Summary

	// Close writes any trailer.
	Close() error
}

// ReporterOptions configures NewReporter.
type ReporterOptions struct {
	// Color enables coloured text output.
	Color bool

	// PublishEmpty publishes documents without diagnostics in lsp format.
	PublishEmpty bool
}

// NewReporter creates a reporter for format writing to w.
func NewReporter(format OutputFormat, w io.Writer, opts ReporterOptions) (Reporter, error) {
	switch format {
	case FormatText, "":
		return &TextReporter{w: w, palette: NewPalette(opts.Color)}, nil
	case FormatJSON:
		return &JSONReporter{enc: json.NewEncoder(w)}, nil
	case FormatLSP:
		lw := lsp.NewWriter(w)
		lw.PublishEmpty = opts.PublishEmpty
		return &LSPReporter{w: lw}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// tally accumulates a Summary.
type tally struct {
	mu      sync.Mutex
	summary Summary
}

func (t *tally) add(result *engine.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.summary.Files++
	if result.ParseErr != nil {
		t.summary.ParseFailures++
	}
	for _, d := range result.Diagnostics {
		switch d.Severity {
		case diagnostic.LevelError:
			t.summary.Errors++
		case diagnostic.LevelWarning:
			t.summary.Warnings++
		case diagnostic.LevelInformation:
			t.summary.Information++
		case diagnostic.LevelHint:
			t.summary.Hints++
		}
	}
}

func (t *tally) addReadFailure() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.summary.Files++
	t.summary.ReadFailures++
}

// Summary returns the counts so far.
func (t *tally) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

// TextReporter writes diagnostics grouped by file:
//
//	pages/index.json
//	  3:5  warning  All texts in a warning block must be the same size!  WARNING_TEXT_SIZES_SHOULD_BE_EQUAL
//
// Lines and columns are one-based.
type TextReporter struct {
	tally
	w       io.Writer
	palette *Palette
	mu      sync.Mutex
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *engine.Result) error {
	r.add(result)
	if result.ParseErr == nil && len(result.Diagnostics) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.palette
	if _, err := fmt.Fprintln(r.w, p.File("%s", result.Document.URI)); err != nil {
		return err
	}
	if result.ParseErr != nil {
		_, err := fmt.Fprintf(r.w, "  %s  %s\n\n", p.Error("%s", "parse error"), result.ParseErr)
		return err
	}
	for _, d := range result.Diagnostics {
		pos := p.Faint("%d:%d", d.Range.Start.Line+1, d.Range.Start.Character+1)
		if _, err := fmt.Fprintf(r.w, "  %s  %s  %s  %s\n",
			pos, r.level(d.Severity), d.Message, p.Faint("%s", d.Rule)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w)
	return err
}

// ReportError implements Reporter.
func (r *TextReporter) ReportError(path string, err error) error {
	r.addReadFailure()

	r.mu.Lock()
	defer r.mu.Unlock()
	_, werr := fmt.Fprintf(r.w, "%s\n  %s  %v\n\n", r.palette.File("%s", path), r.palette.Error("%s", "read error"), err)
	return werr
}

// Close writes the problem count when there is anything to report.
func (r *TextReporter) Close() error {
	s := r.Summary()
	if s.Problems() == 0 && s.ParseFailures == 0 && s.ReadFailures == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	line := fmt.Sprintf("%d %s (%d %s, %d %s, %d information, %d %s) in %d %s",
		s.Problems(), plural(s.Problems(), "problem"),
		s.Errors, plural(s.Errors, "error"),
		s.Warnings, plural(s.Warnings, "warning"),
		s.Information,
		s.Hints, plural(s.Hints, "hint"),
		s.Files, plural(s.Files, "file"))
	if n := s.ParseFailures + s.ReadFailures; n > 0 {
		line += fmt.Sprintf(", %d unreadable", n)
	}

	colorize := r.palette.Warning
	if s.Errors > 0 || s.ReadFailures > 0 {
		colorize = r.palette.Error
	}
	_, err := fmt.Fprintln(r.w, colorize("%s", line))
	return err
}

func (r *TextReporter) level(l diagnostic.Level) string {
	switch l {
	case diagnostic.LevelError:
		return r.palette.Error("%s", l)
	case diagnostic.LevelWarning:
		return r.palette.Warning("%s", l)
	case diagnostic.LevelInformation:
		return r.palette.Info("%s", l)
	default:
		return r.palette.Hint("%s", l)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// JSONReporter writes one JSON object per document, one per line.
type JSONReporter struct {
	tally
	enc *json.Encoder
	mu  sync.Mutex
}

type jsonResult struct {
	File        string                  `json:"file"`
	RunID       string                  `json:"run_id,omitempty"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
	ParseError  string                  `json:"parse_error,omitempty"`
	ReadError   string                  `json:"read_error,omitempty"`
	Disabled    bool                    `json:"disabled,omitempty"`
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *engine.Result) error {
	r.add(result)

	out := jsonResult{
		File:        result.Document.URI,
		RunID:       result.RunID,
		Diagnostics: result.Diagnostics,
		Disabled:    result.Disabled,
	}
	if out.Diagnostics == nil {
		out.Diagnostics = []diagnostic.Diagnostic{}
	}
	if result.ParseErr != nil {
		out.ParseError = result.ParseErr.Error()
	}
	return r.encode(out)
}

// ReportError implements Reporter.
func (r *JSONReporter) ReportError(path string, err error) error {
	r.addReadFailure()
	return r.encode(jsonResult{
		File:        path,
		Diagnostics: []diagnostic.Diagnostic{},
		ReadError:   err.Error(),
	})
}

func (r *JSONReporter) encode(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(v)
}

// Close implements Reporter.
func (r *JSONReporter) Close() error { return nil }

// LSPReporter publishes diagnostics as language server notifications.
type LSPReporter struct {
	tally
	w *lsp.Writer
}

// Report implements Reporter.
func (r *LSPReporter) Report(ctx context.Context, result *engine.Result) error {
	r.add(result)
	_, err := r.w.Publish(ctx, result.Document, result.Diagnostics)
	return err
}

// ReportError implements Reporter. Unreadable files have no document to
// publish for, so they are only counted.
func (r *LSPReporter) ReportError(string, error) error {
	r.addReadFailure()
	return nil
}

// Close implements Reporter.
func (r *LSPReporter) Close() error { return nil }
