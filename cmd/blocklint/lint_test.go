package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"mercator-hq/blocklint/pkg/cli"
)

const (
	cleanDoc    = `{"block": "page", "content": [{"block": "text"}]}`
	problemsDoc = `{"block": "page", "content": [{"elem": "x"}, {"block": "b", "FOO": 1}]}`
)

// setupLint resets the lint flags, points --config at a file holding
// configYAML (or at a missing file when it is empty) and returns a command
// writing to the returned buffers.
func setupLint(t *testing.T, configYAML string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	cfgFile = filepath.Join(dir, "blocklint.yaml")
	if configYAML != "" {
		writeFile(t, cfgFile, configYAML)
	}
	logLevel, logFormat = "error", ""

	lintFlags.files = nil
	lintFlags.dirs = nil
	lintFlags.format = "text"
	lintFlags.color = "never"
	lintFlags.strict = false
	lintFlags.watch = false
	lintFlags.jobs = 2
	lintFlags.all = false
	lintFlags.progress = false

	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLintDocumentsCleanFile(t *testing.T) {
	cmd, out := setupLint(t, "")
	doc := filepath.Join(t.TempDir(), "page.json")
	writeFile(t, doc, cleanDoc)
	lintFlags.files = []string{doc}

	if err := lintDocuments(cmd, nil); err != nil {
		t.Fatalf("lintDocuments() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("clean document produced output:\n%s", out.String())
	}
}

func TestLintDocumentsDefaultSeverityDoesNotFail(t *testing.T) {
	cmd, out := setupLint(t, "")
	doc := filepath.Join(t.TempDir(), "page.json")
	writeFile(t, doc, problemsDoc)

	// Error-severity rules are published as information by default.
	if err := lintDocuments(cmd, []string{doc}); err != nil {
		t.Fatalf("lintDocuments() error = %v", err)
	}
	if !strings.Contains(out.String(), "information  Field named 'block' is required!") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestLintDocumentsCorrectedSeverityFails(t *testing.T) {
	cmd, out := setupLint(t, "lint:\n  correct_error_severity: true\n")
	doc := filepath.Join(t.TempDir(), "page.json")
	writeFile(t, doc, problemsDoc)
	lintFlags.files = []string{doc}

	err := lintDocuments(cmd, nil)
	if !errors.Is(err, cli.ErrProblemsFound) {
		t.Fatalf("lintDocuments() error = %v, want ErrProblemsFound", err)
	}
	if cli.ExitCode(err) != 1 {
		t.Errorf("ExitCode() = %d, want 1", cli.ExitCode(err))
	}
	if !strings.Contains(out.String(), "2 problems (2 errors") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestLintDocumentsStrict(t *testing.T) {
	tests := []struct {
		name    string
		content string
		strict  bool
		wantErr bool
	}{
		{"problems lenient", problemsDoc, false, false},
		{"problems strict", problemsDoc, true, true},
		{"parse error lenient", `{"block": `, false, false},
		{"parse error strict", `{"block": `, true, true},
		{"clean strict", cleanDoc, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := setupLint(t, "")
			doc := filepath.Join(t.TempDir(), "page.json")
			writeFile(t, doc, tt.content)
			lintFlags.files = []string{doc}
			lintFlags.strict = tt.strict

			err := lintDocuments(cmd, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("lintDocuments() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLintDocumentsDirectoryJSON(t *testing.T) {
	cmd, out := setupLint(t, "")
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"), cleanDoc)
	writeFile(t, filepath.Join(root, "nested", "b.json"), problemsDoc)
	writeFile(t, filepath.Join(root, "notes.txt"), "not a document")
	writeFile(t, filepath.Join(root, ".cache", "c.json"), problemsDoc)
	lintFlags.dirs = []string{root}
	lintFlags.format = "json"

	if err := lintDocuments(cmd, nil); err != nil {
		t.Fatalf("lintDocuments() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
	}
	var second struct {
		File        string            `json:"file"`
		Diagnostics []json.RawMessage `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(second.File, filepath.Join("nested", "b.json")) {
		t.Errorf("file = %q, want nested/b.json", second.File)
	}
	if len(second.Diagnostics) != 2 {
		t.Errorf("got %d diagnostics, want 2", len(second.Diagnostics))
	}
}

func TestLintDocumentsMissingFile(t *testing.T) {
	cmd, out := setupLint(t, "")
	lintFlags.files = []string{filepath.Join(t.TempDir(), "missing.json")}

	err := lintDocuments(cmd, nil)
	if !errors.Is(err, cli.ErrProblemsFound) {
		t.Fatalf("lintDocuments() error = %v, want ErrProblemsFound", err)
	}
	if !strings.Contains(out.String(), "read error") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestLintDocumentsUsageErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
	}{
		{"no file or dir", func() {}},
		{"unknown format", func() {
			lintFlags.files = []string{"a.json"}
			lintFlags.format = "xml"
		}},
		{"empty directory", func() {
			lintFlags.dirs = []string{t.TempDir()}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := setupLint(t, "")
			tt.setup()

			err := lintDocuments(cmd, nil)
			if err == nil {
				t.Fatal("lintDocuments() returned no error")
			}
			if cli.ExitCode(err) != 2 {
				t.Errorf("ExitCode() = %d, want 2", cli.ExitCode(err))
			}
		})
	}
}

func TestLintDocumentsInvalidConfig(t *testing.T) {
	cmd, _ := setupLint(t, "lint:\n  locale: xx\n")
	lintFlags.files = []string{"a.json"}

	err := lintDocuments(cmd, nil)
	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("lintDocuments() error = %v, want ConfigError", err)
	}
}

func TestLintDocumentsRecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	cmd, _ := setupLint(t, "history:\n  enabled: true\n  path: "+dbPath+"\n")
	doc := filepath.Join(t.TempDir(), "page.json")
	writeFile(t, doc, problemsDoc)
	lintFlags.files = []string{doc}

	if err := lintDocuments(cmd, nil); err != nil {
		t.Fatalf("lintDocuments() error = %v", err)
	}

	historyFlags.db = dbPath
	historyFlags.file = ""
	historyFlags.since = 0
	historyFlags.failed = false
	historyFlags.limit = 10
	historyFlags.format = "json"
	defer func() { historyFlags.db = "" }()

	var out bytes.Buffer
	listCmd := &cobra.Command{}
	listCmd.SetOut(&out)
	if err := listHistory(listCmd, nil); err != nil {
		t.Fatalf("listHistory() error = %v", err)
	}

	var run struct {
		File        string         `json:"file"`
		Diagnostics int            `json:"diagnostics"`
		RuleCounts  map[string]int `json:"rule_counts"`
	}
	if err := json.Unmarshal(out.Bytes(), &run); err != nil {
		t.Fatalf("output is not one JSON run: %v\n%s", err, out.String())
	}
	if run.Diagnostics != 2 || run.RuleCounts["uppercaseNamesIsForbidden"] != 1 {
		t.Errorf("run = %+v", run)
	}
}

func TestCollectDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.json"), cleanDoc)
	writeFile(t, filepath.Join(root, "a.JSON"), cleanDoc)
	writeFile(t, filepath.Join(root, "c.bem"), cleanDoc)
	writeFile(t, filepath.Join(root, "d.txt"), cleanDoc)

	explicit := filepath.Join(root, "b.json")
	got, err := collectDocuments([]string{explicit}, []string{root}, []string{".json", ".bem"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		explicit,
		filepath.Join(root, "a.JSON"),
		filepath.Join(root, "c.bem"),
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("collectDocuments() = %v, want %v", got, want)
	}

	if _, err := collectDocuments(nil, []string{filepath.Join(root, "missing")}, nil); err == nil {
		t.Error("collectDocuments() with missing dir returned no error")
	}
}
