package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mercator-hq/blocklint/pkg/bem/diagnostic"
	"mercator-hq/blocklint/pkg/bem/lint"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blocklint.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Lint.Enable {
		t.Error("lint should be enabled by default")
	}
	if cfg.Lint.Locale != DefaultLintLocale {
		t.Errorf("expected locale %q, got %q", DefaultLintLocale, cfg.Lint.Locale)
	}
	if cfg.Lint.MaxFileSize != DefaultMaxFileSize || cfg.Lint.MaxDepth != DefaultMaxDepth {
		t.Errorf("unexpected parser limits %d/%d", cfg.Lint.MaxFileSize, cfg.Lint.MaxDepth)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("expected debounce %v, got %v", DefaultWatchDebounce, cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 1 || cfg.Watch.Extensions[0] != ".json" {
		t.Errorf("unexpected extensions %v", cfg.Watch.Extensions)
	}
	if cfg.History.Enabled || cfg.History.RetentionDays != DefaultHistoryRetentionDays {
		t.Errorf("unexpected history defaults %+v", cfg.History)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
lint:
  enable: false
  locale: ru
  correct_error_severity: true
  severity:
    blockNameIsRequired: Warning
    TEXT_SEVERAL_H1: none
watch:
  debounce: 250ms
  extensions: [".json", ".bemjson"]
history:
  enabled: true
  path: "./history.db"
  prune_schedule: "*/5 * * * *"
telemetry:
  logging:
    level: debug
    format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Lint.Enable {
		t.Error("explicit enable: false was overwritten")
	}
	if cfg.Lint.Locale != "ru" || !cfg.Lint.CorrectErrorSeverity {
		t.Errorf("unexpected lint section %+v", cfg.Lint)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 2 {
		t.Errorf("unexpected extensions %v", cfg.Watch.Extensions)
	}
	if !cfg.History.Enabled || cfg.History.Path != "./history.db" {
		t.Errorf("unexpected history section %+v", cfg.History)
	}
	if cfg.History.RetentionDays != DefaultHistoryRetentionDays {
		t.Errorf("retention days should keep its default, got %d", cfg.History.RetentionDays)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("unexpected logging section %+v", cfg.Telemetry.Logging)
	}

	sev := cfg.Lint.SeverityConfig()
	if sev[lint.BlockNameIsRequired] != diagnostic.SeverityWarning {
		t.Errorf("blockNameIsRequired = %q", sev[lint.BlockNameIsRequired])
	}
	if sev[lint.TextSeveralH1] != diagnostic.SeverityNone {
		t.Errorf("TEXT_SEVERAL_H1 = %q", sev[lint.TextSeveralH1])
	}
	if got, ok := sev[lint.UppercaseNamesIsForbidden]; ok {
		t.Errorf("rule missing from the severity map should be dropped, got %q", got)
	}

	opts := cfg.Lint.DiagnosticOptions()
	if opts.Locale != "ru" || !opts.CorrectErrorSeverity {
		t.Errorf("unexpected diagnostic options %+v", opts)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "invalid yaml",
			content: "lint: [",
			want:    []string{"invalid YAML"},
		},
		{
			name: "unknown rule with suggestion",
			content: `
lint:
  severity:
    blockNameIsRequierd: Error
`,
			want: []string{"lint.severity.blockNameIsRequierd", "Did you mean 'blockNameIsRequired'?"},
		},
		{
			name: "unknown severity",
			content: `
lint:
  severity:
    TEXT_SEVERAL_H1: Fatal
`,
			want: []string{"lint.severity.TEXT_SEVERAL_H1", "unknown severity"},
		},
		{
			name: "several problems",
			content: `
lint:
  locale: de
history:
  enabled: true
  prune_schedule: "every day"
telemetry:
  logging:
    level: verbose
`,
			want: []string{"3 errors", "lint.locale", "history.prune_schedule", "telemetry.logging.level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not contain %q", err.Error(), w)
				}
			}
		})
	}
}

func TestValidate_ReturnsValidationError(t *testing.T) {
	cfg := Default()
	cfg.Watch.Extensions = []string{"json"}

	err := Validate(cfg)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors) != 1 || verr.Errors[0].Field != "watch.extensions[0]" {
		t.Errorf("unexpected errors %+v", verr.Errors)
	}
}

func TestLoadConfigOrDefault_MissingFile(t *testing.T) {
	t.Setenv("BLOCKLINT_LINT_LOCALE", "ru")

	cfg, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfigOrDefault() error = %v", err)
	}
	if cfg.Lint.Locale != "ru" {
		t.Errorf("environment override not applied, locale = %q", cfg.Lint.Locale)
	}
	if !cfg.Lint.Enable {
		t.Error("defaults not applied")
	}
}

func TestLoadConfigOrDefault_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "lint:\n  locale: en\n")

	t.Setenv("BLOCKLINT_LINT_ENABLE", "false")
	t.Setenv("BLOCKLINT_LINT_MAX_DEPTH", "64")
	t.Setenv("BLOCKLINT_WATCH_DEBOUNCE", "1s")
	t.Setenv("BLOCKLINT_WATCH_EXTENSIONS", ".json, .bem")
	t.Setenv("BLOCKLINT_HISTORY_RETENTION_DAYS", "7")
	t.Setenv("BLOCKLINT_TELEMETRY_METRICS_ENABLED", "not-a-bool")

	cfg, err := LoadConfigOrDefault(path)
	if err != nil {
		t.Fatalf("LoadConfigOrDefault() error = %v", err)
	}
	if cfg.Lint.Enable {
		t.Error("BLOCKLINT_LINT_ENABLE not applied")
	}
	if cfg.Lint.MaxDepth != 64 {
		t.Errorf("expected max depth 64, got %d", cfg.Lint.MaxDepth)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 2 || cfg.Watch.Extensions[1] != ".bem" {
		t.Errorf("unexpected extensions %v", cfg.Watch.Extensions)
	}
	if cfg.History.RetentionDays != 7 {
		t.Errorf("expected retention 7, got %d", cfg.History.RetentionDays)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("unparseable override should be ignored")
	}
}

func TestLoadConfigOrDefault_InvalidOverride(t *testing.T) {
	path := writeConfig(t, "lint:\n  locale: en\n")
	t.Setenv("BLOCKLINT_TELEMETRY_LOGGING_FORMAT", "xml")

	_, err := LoadConfigOrDefault(path)
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("expected validation error after overrides, got %v", err)
	}
}

func TestReloadConfig(t *testing.T) {
	path := writeConfig(t, "lint:\n  locale: en\n")
	if _, err := Initialize(path); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { SetConfig(nil) })

	if err := os.WriteFile(path, []byte("lint:\n  locale: ru\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReloadConfig(path); err != nil {
		t.Fatalf("ReloadConfig() error = %v", err)
	}
	if GetConfig().Lint.Locale != "ru" {
		t.Errorf("reload not applied, locale = %q", GetConfig().Lint.Locale)
	}

	if err := os.WriteFile(path, []byte("lint:\n  locale: xx\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReloadConfig(path); err == nil {
		t.Fatal("expected reload error")
	}
	if GetConfig().Lint.Locale != "ru" {
		t.Error("failed reload replaced the configuration")
	}
}

func TestSeverityConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[lint.RuleKey]diagnostic.Severity
		absent  []lint.RuleKey
	}{
		{
			name:    "no severity section uses defaults",
			content: "lint:\n  locale: en\n",
			want: map[lint.RuleKey]diagnostic.Severity{
				lint.BlockNameIsRequired:       diagnostic.SeverityError,
				lint.UppercaseNamesIsForbidden: diagnostic.SeverityError,
				lint.TextSeveralH1:             diagnostic.SeverityWarning,
			},
		},
		{
			name:    "partial map drops unlisted rules",
			content: "lint:\n  severity:\n    blockNameIsRequired: Warning\n",
			want: map[lint.RuleKey]diagnostic.Severity{
				lint.BlockNameIsRequired: diagnostic.SeverityWarning,
			},
			absent: []lint.RuleKey{lint.UppercaseNamesIsForbidden, lint.TextSeveralH1, lint.GridTooMuchMarketingBlocks},
		},
		{
			name:    "empty map drops every rule",
			content: "lint:\n  severity: {}\n",
			absent:  lint.Keys(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}
			sev := cfg.Lint.SeverityConfig()
			for key, want := range tt.want {
				if sev[key] != want {
					t.Errorf("%s = %q, want %q", key, sev[key], want)
				}
			}
			for _, key := range tt.absent {
				if got, ok := sev[key]; ok {
					t.Errorf("%s = %q, want no entry", key, got)
				}
				if _, published := sev[key].Level(false); published {
					t.Errorf("%s would still be published", key)
				}
			}
		})
	}
}

func TestValidate_SeverityErrorsAreSorted(t *testing.T) {
	cfg := Default()
	cfg.Lint.Severity = map[string]string{
		"zzz":                 "Error",
		"TEXT_SEVERAL_H1":     "Fatal",
		"blockNameIsRequierd": "Error",
		"blockNameIsRequired": "Hint",
	}

	for i := 0; i < 5; i++ {
		var verr ValidationError
		if !errors.As(Validate(cfg), &verr) {
			t.Fatal("expected ValidationError")
		}
		var fields []string
		for _, e := range verr.Errors {
			fields = append(fields, e.Field)
		}
		want := "lint.severity.TEXT_SEVERAL_H1,lint.severity.blockNameIsRequierd,lint.severity.zzz"
		if got := strings.Join(fields, ","); got != want {
			t.Fatalf("fields = %s, want %s", got, want)
		}
		if !strings.Contains(verr.Errors[1].Message, "Did you mean 'blockNameIsRequired'?") {
			t.Errorf("missing suggestion in %q", verr.Errors[1].Message)
		}
	}
}
