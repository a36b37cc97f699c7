package diagnostic

import (
	"mercator-hq/blocklint/pkg/bem/ast"
	"mercator-hq/blocklint/pkg/bem/lint"
)

// Range is a zero-based line/character span.
type Range struct {
	Start ast.Position `json:"start"`
	End   ast.Position `json:"end"`
}

// Diagnostic is a published problem.
type Diagnostic struct {
	Rule     lint.RuleKey `json:"rule"`
	Severity Level        `json:"severity"`
	Message  string       `json:"message"`
	Source   string       `json:"source"`
	Range    Range        `json:"range"`
	Location ast.Location `json:"-"`
}

// Options controls how problems are turned into diagnostics.
type Options struct {
	Severity SeverityConfig
	Locale   string

	// CorrectErrorSeverity publishes Error as LevelError instead of
	// LevelInformation.
	CorrectErrorSeverity bool
}

// Assemble turns raw problems into diagnostics for doc. Problems whose rule
// has no publishable severity are dropped; the rest keep their order.
func Assemble(problems []lint.Problem, doc *Document, opts Options) []Diagnostic {
	out := make([]Diagnostic, 0, len(problems))
	for _, p := range problems {
		level, ok := opts.Severity[p.Key].Level(opts.CorrectErrorSeverity)
		if !ok {
			continue
		}
		out = append(out, Diagnostic{
			Rule:     p.Key,
			Severity: level,
			Message:  Message(opts.Locale, p.Key),
			Source:   doc.Name,
			Range:    doc.Range(p.Loc),
			Location: p.Loc,
		})
	}
	return out
}
