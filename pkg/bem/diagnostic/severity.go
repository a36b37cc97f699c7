package diagnostic

import (
	"fmt"
	"strings"

	"mercator-hq/blocklint/pkg/bem/lint"
)

// Severity is the configured severity of a rule.
type Severity string

const (
	SeverityError       Severity = "Error"
	SeverityWarning     Severity = "Warning"
	SeverityInformation Severity = "Information"
	SeverityHint        Severity = "Hint"
	SeverityNone        Severity = "None"
)

// ParseSeverity accepts a severity name in any letter case.
func ParseSeverity(s string) (Severity, error) {
	for _, sev := range []Severity{SeverityError, SeverityWarning, SeverityInformation, SeverityHint, SeverityNone} {
		if strings.EqualFold(s, string(sev)) {
			return sev, nil
		}
	}
	return "", fmt.Errorf("unknown severity %q (valid: Error, Warning, Information, Hint, None)", s)
}

// Level is the published severity of a diagnostic. The numeric values match
// the Language Server Protocol DiagnosticSeverity.
type Level int

const (
	LevelError Level = iota + 1
	LevelWarning
	LevelInformation
	LevelHint
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInformation:
		return "information"
	case LevelHint:
		return "hint"
	default:
		return "unknown"
	}
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Level maps a configured severity to the published level. Error is
// published as Information unless correctError is set; None and unknown
// severities are not published at all.
func (s Severity) Level(correctError bool) (Level, bool) {
	switch s {
	case SeverityError:
		if correctError {
			return LevelError, true
		}
		return LevelInformation, true
	case SeverityWarning:
		return LevelWarning, true
	case SeverityInformation:
		return LevelInformation, true
	case SeverityHint:
		return LevelHint, true
	default:
		return 0, false
	}
}

// SeverityConfig maps rule keys to severities. A missing key disables the rule.
type SeverityConfig map[lint.RuleKey]Severity

// DefaultSeverityConfig enables every rule. Structural rules are errors,
// the others warnings.
func DefaultSeverityConfig() SeverityConfig {
	cfg := make(SeverityConfig, len(lint.Keys()))
	for _, k := range lint.Keys() {
		cfg[k] = SeverityWarning
	}
	cfg[lint.BlockNameIsRequired] = SeverityError
	cfg[lint.UppercaseNamesIsForbidden] = SeverityError
	return cfg
}
