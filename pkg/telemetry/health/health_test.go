package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"mercator-hq/blocklint/pkg/history"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name            string
		timeout         time.Duration
		expectedTimeout time.Duration
	}{
		{"default timeout", 0, 5 * time.Second},
		{"custom timeout", 10 * time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := New(tt.timeout)
			if checker.checkTimeout != tt.expectedTimeout {
				t.Errorf("expected timeout %v, got %v", tt.expectedTimeout, checker.checkTimeout)
			}
			if len(checker.checks) != 0 {
				t.Errorf("expected no checks, got %d", len(checker.checks))
			}
		})
	}
}

func TestRegisterCheck(t *testing.T) {
	checker := New(time.Second)
	checker.RegisterCheck("history", func(ctx context.Context) error { return errors.New("down") })
	checker.RegisterCheck("config", func(ctx context.Context) error { return nil })
	checker.RegisterCheck("history", func(ctx context.Context) error { return nil })

	if len(checker.checks) != 2 {
		t.Errorf("expected 2 checks, got %d", len(checker.checks))
	}
	if err := checker.checks["history"](context.Background()); err != nil {
		t.Errorf("re-registered check not replaced: %v", err)
	}
}

func TestCheckReadiness(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		wantStatus string
		wantFailed string
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantStatus: StatusReady,
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"config":  func(ctx context.Context) error { return nil },
				"history": func(ctx context.Context) error { return nil },
			},
			wantStatus: StatusReady,
		},
		{
			name: "one failing",
			checks: map[string]CheckFunc{
				"config":  func(ctx context.Context) error { return nil },
				"history": func(ctx context.Context) error { return errors.New("database is locked") },
			},
			wantStatus: StatusDegraded,
			wantFailed: "history",
		},
		{
			name: "timeout",
			checks: map[string]CheckFunc{
				"slow": func(ctx context.Context) error {
					<-ctx.Done()
					time.Sleep(50 * time.Millisecond)
					return nil
				},
			},
			wantStatus: StatusDegraded,
			wantFailed: "slow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := New(20 * time.Millisecond)
			for name, check := range tt.checks {
				checker.RegisterCheck(name, check)
			}

			status := checker.CheckReadiness(context.Background())
			if status.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status.Status, tt.wantStatus)
			}
			if len(status.Checks) != len(tt.checks) {
				t.Errorf("got %d results, want %d", len(status.Checks), len(tt.checks))
			}
			if tt.wantFailed != "" && status.Checks[tt.wantFailed].Status != StatusUnhealthy {
				t.Errorf("check %q = %+v, want unhealthy", tt.wantFailed, status.Checks[tt.wantFailed])
			}
		})
	}
}

func TestHandlers(t *testing.T) {
	checker := New(time.Second)
	mux := http.NewServeMux()
	Register(mux, checker, "0.1.0", "abc123", "2026-01-01")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"liveness", http.MethodGet, "/health", http.StatusOK},
		{"liveness head", http.MethodHead, "/health", http.StatusOK},
		{"liveness post", http.MethodPost, "/health", http.StatusMethodNotAllowed},
		{"readiness", http.MethodGet, "/ready", http.StatusOK},
		{"version", http.MethodGet, "/version", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.method == http.MethodHead && rec.Body.Len() != 0 {
				t.Error("HEAD response has a body")
			}
		})
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Version != "0.1.0" || info.Commit != "abc123" || info.GoVersion == "" {
		t.Errorf("version = %+v", info)
	}
}

func TestReadinessWithHistoryStore(t *testing.T) {
	store, err := history.Open(history.DefaultStoreConfig(filepath.Join(t.TempDir(), "history.db")))
	if err != nil {
		t.Fatal(err)
	}

	checker := New(time.Second)
	checker.RegisterCheck("history", store.Ping)
	handler := checker.ReadinessHandler()

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("open store: expected status 200, got %d", rec.Code)
	}

	store.Close()

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("closed store: expected status 503, got %d", rec.Code)
	}
	var status Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if status.Checks["history"].Status != StatusUnhealthy {
		t.Errorf("history check = %+v", status.Checks["history"])
	}
}
