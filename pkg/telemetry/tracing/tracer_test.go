package tracing

import (
	"context"
	"errors"
	"testing"

	"mercator-hq/blocklint/pkg/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorded(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewWithProvider(&config.TracingConfig{Enabled: true, ServiceName: "test"}, tp), rec
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.TracingConfig
		wantErr     bool
		wantEnabled bool
	}{
		{name: "nil config", config: nil, wantErr: true},
		{
			name:   "disabled",
			config: &config.TracingConfig{Enabled: false, ServiceName: "test"},
		},
		{
			name:        "enabled without endpoint",
			config:      &config.TracingConfig{Enabled: true, ServiceName: "test", SampleRatio: 1},
			wantEnabled: true,
		},
		{
			name: "enabled with endpoint",
			config: &config.TracingConfig{
				Enabled:     true,
				Endpoint:    "localhost:4317",
				Insecure:    true,
				SampleRatio: 0.5,
				ServiceName: "test",
			},
			wantEnabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer tracer.Shutdown(context.Background())

			if tracer.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.wantEnabled)
			}
			_, span := tracer.Start(context.Background(), "lint")
			span.End()
		})
	}
}

func TestDisabledTracerDoesNotRecord(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, span := tracer.Start(context.Background(), "lint")
	defer span.End()
	if span.IsRecording() {
		t.Error("disabled tracer returned a recording span")
	}
}

func TestNilTracer(t *testing.T) {
	var tracer *Tracer
	_, span := tracer.Start(context.Background(), "lint")
	span.End()
	if tracer.Enabled() {
		t.Error("nil tracer reports enabled")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestSpanAttributes(t *testing.T) {
	tracer, rec := newRecorded(t)

	_, span := tracer.Start(context.Background(), "lint")
	SetDocumentAttributes(span, "run-1", "page.json", 42)
	SetResultAttributes(span, 3, 1)
	SetOK(span)
	span.End()

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	got := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		got[kv.Key] = kv.Value
	}

	if got[AttrRunID].AsString() != "run-1" {
		t.Errorf("%s = %q", AttrRunID, got[AttrRunID].AsString())
	}
	if got[AttrFile].AsString() != "page.json" {
		t.Errorf("%s = %q", AttrFile, got[AttrFile].AsString())
	}
	if got[AttrBytes].AsInt64() != 42 {
		t.Errorf("%s = %d", AttrBytes, got[AttrBytes].AsInt64())
	}
	if got[AttrDiagnostics].AsInt64() != 3 {
		t.Errorf("%s = %d", AttrDiagnostics, got[AttrDiagnostics].AsInt64())
	}
	if got[AttrDropped].AsInt64() != 1 {
		t.Errorf("%s = %d", AttrDropped, got[AttrDropped].AsInt64())
	}
	if spans[0].Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", spans[0].Status().Code)
	}
}

func TestSetError(t *testing.T) {
	tracer, rec := newRecorded(t)

	_, span := tracer.Start(context.Background(), "lint")
	SetError(span, errors.New("boom"))
	SetError(span, nil)
	span.End()

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].Status().Code)
	}
	if spans[0].Status().Description != "boom" {
		t.Errorf("description = %q, want boom", spans[0].Status().Description)
	}
	if len(spans[0].Events()) != 1 {
		t.Errorf("got %d events, want 1 exception event", len(spans[0].Events()))
	}
}

func TestChildSpanSharesTrace(t *testing.T) {
	tracer, rec := newRecorded(t)

	ctx, parent := tracer.Start(context.Background(), "lint")
	_, child := tracer.Start(ctx, "parse")
	child.End()
	parent.End()

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].SpanContext().TraceID() != spans[1].SpanContext().TraceID() {
		t.Error("child span is in a different trace")
	}
	if spans[0].Parent().SpanID() != spans[1].SpanContext().SpanID() {
		t.Error("child span parent is not the lint span")
	}
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1.0, "ParentBased{root:AlwaysOnSampler"},
		{2.0, "ParentBased{root:AlwaysOnSampler"},
		{0, "ParentBased{root:AlwaysOffSampler"},
		{0.25, "ParentBased{root:TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		got := newSampler(tt.ratio).Description()
		if len(got) < len(tt.want) || got[:len(tt.want)] != tt.want {
			t.Errorf("newSampler(%v).Description() = %q, want prefix %q", tt.ratio, got, tt.want)
		}
	}
}
