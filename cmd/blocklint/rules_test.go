package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"mercator-hq/blocklint/pkg/bem/lint"
)

func runRules(t *testing.T, configYAML, format, locale string) string {
	t.Helper()
	cfgFile = filepath.Join(t.TempDir(), "blocklint.yaml")
	if configYAML != "" {
		writeFile(t, cfgFile, configYAML)
	}
	logLevel, logFormat = "", ""
	rulesFlags.format = format
	rulesFlags.locale = locale

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	if err := listRules(cmd, nil); err != nil {
		t.Fatalf("listRules() error = %v", err)
	}
	return out.String()
}

func TestListRulesText(t *testing.T) {
	out := runRules(t, "", "text", "")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(lint.Keys())+1 {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(lint.Keys())+1, out)
	}
	if !strings.HasPrefix(lines[0], "RULE") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(out, "Uppercase properties are forbidden!") {
		t.Errorf("missing message:\n%s", out)
	}
}

func TestListRulesJSON(t *testing.T) {
	out := runRules(t, "lint:\n  correct_error_severity: true\n  severity:\n    blockNameIsRequired: Error\n    WARNING_TEXT_SIZES_SHOULD_BE_EQUAL: Warning\n    TEXT_SEVERAL_H1: None\n", "json", "")

	var rules []struct {
		Rule     string `json:"rule"`
		Severity string `json:"severity"`
		Level    string `json:"level"`
	}
	if err := json.Unmarshal([]byte(out), &rules); err != nil {
		t.Fatal(err)
	}
	byRule := make(map[string]string)
	for _, r := range rules {
		byRule[r.Rule] = r.Severity + "/" + r.Level
	}

	tests := map[string]string{
		"blockNameIsRequired":                "Error/error",
		"WARNING_TEXT_SIZES_SHOULD_BE_EQUAL": "Warning/warning",
		"TEXT_SEVERAL_H1":                    "None/-",
		"uppercaseNamesIsForbidden":          "None/-",
	}
	for rule, want := range tests {
		if got := byRule[rule]; got != want {
			t.Errorf("%s = %q, want %q", rule, got, want)
		}
	}
}

func TestListRulesUnknownLocale(t *testing.T) {
	cfgFile = filepath.Join(t.TempDir(), "blocklint.yaml")
	rulesFlags.format = "text"
	rulesFlags.locale = "xx"
	defer func() { rulesFlags.locale = "" }()

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	if err := listRules(cmd, nil); err == nil {
		t.Error("listRules() with unknown locale returned no error")
	}
}
