package engine

import (
	"time"

	"mercator-hq/blocklint/pkg/bem/diagnostic"
)

// Result is the outcome of one validation run.
type Result struct {
	// RunID identifies the run in logs, traces and history.
	RunID string

	Document    *diagnostic.Document
	Diagnostics []diagnostic.Diagnostic

	// ParseErr is set when the document is not valid JSON.
	ParseErr error

	// Disabled is set when linting is turned off in the configuration.
	Disabled bool

	// Dropped counts problems whose rule severity is None or unmapped.
	Dropped int

	StartedAt time.Time
	Duration  time.Duration
}

// HasErrors reports whether any diagnostic is published at LevelError.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diagnostic.LevelError {
			return true
		}
	}
	return false
}

// RuleCounts returns the number of diagnostics per rule key.
func (r *Result) RuleCounts() map[string]int {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, d := range r.Diagnostics {
		counts[string(d.Rule)]++
	}
	return counts
}
