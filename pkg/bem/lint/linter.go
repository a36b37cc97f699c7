package lint

import (
	"mercator-hq/blocklint/pkg/bem/ast"
	"mercator-hq/blocklint/pkg/bem/parser"
)

// Linter runs the rule set over documents. A Linter holds no per-run state
// and may be shared between goroutines.
type Linter struct {
	parser        *parser.Parser
	propertyRules []PropertyRule
	objectRules   []ObjectRule
}

// Result is the outcome of linting one document.
type Result struct {
	Problems []Problem

	// ParseErr is set when the document is not valid JSON. Problems is
	// empty in that case.
	ParseErr error
}

// NewLinter creates a linter with the full rule set.
func NewLinter() *Linter {
	return &Linter{
		parser:        parser.NewParser(),
		propertyRules: propertyRules(),
		objectRules:   objectRules(),
	}
}

// WithParser replaces the parser, e.g. to change size or depth limits.
func (l *Linter) WithParser(p *parser.Parser) *Linter {
	if p != nil {
		l.parser = p
	}
	return l
}

// Lint parses data and runs all rules over it. sourceName only appears in
// parse errors.
func (l *Linter) Lint(data []byte, sourceName string) *Result {
	root, err := l.parser.ParseBytes(data, sourceName)
	if err != nil {
		return &Result{ParseErr: err}
	}
	return &Result{Problems: l.LintNode(root)}
}

// LintNode runs all rules over an already parsed tree with a fresh RuleLog.
func (l *Linter) LintNode(root ast.Node) []Problem {
	log := NewRuleLog()

	onProperty := func(prop *ast.Property, ctx Context) []Problem {
		var out []Problem
		for _, rule := range l.propertyRules {
			out = append(out, rule(prop, ctx, log)...)
		}
		return out
	}
	onObject := func(obj *ast.Object) []Problem {
		var out []Problem
		for _, rule := range l.objectRules {
			out = append(out, rule(obj)...)
		}
		return out
	}

	return Walk(root, onProperty, onObject)
}
