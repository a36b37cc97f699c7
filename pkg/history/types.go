package history

import (
	"errors"
	"time"
)

// ErrInvalidRun is returned when a run cannot be recorded.
var ErrInvalidRun = errors.New("invalid run")

// Run is one recorded validation run.
type Run struct {
	// ID is the run identifier assigned by the engine.
	ID string `json:"id"`

	// File is the document URI or path that was linted.
	File string `json:"file"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`

	// Diagnostics is the number of published diagnostics.
	Diagnostics int `json:"diagnostics"`

	// RuleCounts maps rule keys to the number of diagnostics they produced.
	RuleCounts map[string]int `json:"rule_counts,omitempty"`

	// ParseError holds the parse failure message, empty on success.
	ParseError string `json:"parse_error,omitempty"`
}

// Validate checks that the run has the fields required for storage.
func (r *Run) Validate() error {
	if r == nil {
		return errors.Join(ErrInvalidRun, errors.New("run is nil"))
	}
	if r.ID == "" {
		return errors.Join(ErrInvalidRun, errors.New("run id is required"))
	}
	if r.File == "" {
		return errors.Join(ErrInvalidRun, errors.New("file is required"))
	}
	if r.StartedAt.IsZero() {
		return errors.Join(ErrInvalidRun, errors.New("started_at is required"))
	}
	return nil
}

// Filter selects runs in List and Count. Zero fields match everything.
type Filter struct {
	// File restricts results to one document.
	File string

	// Since and Until bound StartedAt (inclusive).
	Since *time.Time
	Until *time.Time

	// FailedOnly restricts results to runs that could not be parsed.
	FailedOnly bool

	// Limit caps the number of results. Default: 100
	Limit int

	// Offset skips the first results.
	Offset int
}

// DefaultListLimit is the Limit used when a Filter leaves it at zero.
const DefaultListLimit = 100
