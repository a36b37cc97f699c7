package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mercator-hq/blocklint/pkg/bem/diagnostic"
	"mercator-hq/blocklint/pkg/bem/lint"
	"mercator-hq/blocklint/pkg/cli"
)

var rulesFlags struct {
	format string
	locale string
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the lint rules",
	Long: `List every rule with its configured severity, the level it is published
at and its message.

Severity "Error" is published at level information unless
lint.correct_error_severity is set. Rules at severity "None" are not
published.

Examples:
  blocklint rules
  blocklint rules --locale ru
  blocklint rules --format json`,
	RunE: listRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVar(&rulesFlags.format, "format", "text", "output format: text, json")
	rulesCmd.Flags().StringVar(&rulesFlags.locale, "locale", "", "message locale (default: lint.locale)")
}

// ruleInfo describes one rule as configured.
type ruleInfo struct {
	Rule     lint.RuleKey        `json:"rule"`
	Severity diagnostic.Severity `json:"severity"`
	Level    string              `json:"level"`
	Message  string              `json:"message"`
}

func listRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	locale := cfg.Lint.Locale
	if rulesFlags.locale != "" {
		if !diagnostic.IsLocale(rulesFlags.locale) {
			return cli.NewCommandError("rules", fmt.Errorf("unknown locale %q (valid: %v)", rulesFlags.locale, diagnostic.Locales()))
		}
		locale = rulesFlags.locale
	}

	opts := cfg.Lint.DiagnosticOptions()
	rules := make([]ruleInfo, 0, len(lint.Keys()))
	for _, key := range lint.Keys() {
		sev, ok := opts.Severity[key]
		if !ok {
			sev = diagnostic.SeverityNone
		}
		level := "-"
		if l, ok := sev.Level(opts.CorrectErrorSeverity); ok {
			level = l.String()
		}
		rules = append(rules, ruleInfo{
			Rule:     key,
			Severity: sev,
			Level:    level,
			Message:  diagnostic.Message(locale, key),
		})
	}

	out := cmd.OutOrStdout()
	switch rulesFlags.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rules)
	case "text":
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RULE\tSEVERITY\tLEVEL\tMESSAGE")
		for _, r := range rules {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Rule, r.Severity, r.Level, r.Message)
		}
		return tw.Flush()
	default:
		return cli.NewCommandError("rules", fmt.Errorf("unknown output format %q (valid: text, json)", rulesFlags.format))
	}
}
