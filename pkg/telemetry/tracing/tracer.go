package tracing

import (
	"context"
	"errors"
	"fmt"

	"mercator-hq/blocklint/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

// instrumentationName names the tracer obtained from the provider.
const instrumentationName = "mercator-hq/blocklint"

// Tracer wraps an OpenTelemetry tracer. A disabled Tracer hands out noop
// spans, so callers never branch on whether tracing is on.
type Tracer struct {
	config   *config.TracingConfig
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	enabled  bool
}

// New creates a Tracer from cfg.
//
// With an endpoint configured, spans are batched to an OTLP gRPC collector
// through a provider owned by the Tracer. Without one, spans go to the
// globally registered provider. The tracer must be shut down when done:
//
//	defer tracer.Shutdown(context.Background())
func New(cfg *config.TracingConfig) (*Tracer, error) {
	if cfg == nil {
		return nil, errors.New("tracing config is nil")
	}

	if !cfg.Enabled {
		return NewWithProvider(cfg, noop.NewTracerProvider()), nil
	}
	if cfg.Endpoint == "" {
		return NewWithProvider(cfg, otel.GetTracerProvider()), nil
	}

	exporter, err := createOTLPExporter(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SampleRatio)),
	)

	t := NewWithProvider(cfg, provider)
	t.provider = provider
	return t, nil
}

// NewWithProvider creates a Tracer that takes its spans from tp. The
// Tracer does not own tp and Shutdown leaves it running.
func NewWithProvider(cfg *config.TracingConfig, tp trace.TracerProvider) *Tracer {
	enabled := cfg != nil && cfg.Enabled
	return &Tracer{
		config:  cfg,
		tracer:  tp.Tracer(instrumentationName),
		enabled: enabled,
	}
}

// Start creates a span as a child of any span carried by ctx.
//
//	ctx, span := tracer.Start(ctx, "lint")
//	defer span.End()
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if t == nil || t.tracer == nil {
		return noop.NewTracerProvider().Tracer(instrumentationName).Start(ctx, name, opts...)
	}
	return t.tracer.Start(ctx, name, opts...)
}

// Shutdown flushes pending spans when the Tracer owns its provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// Enabled returns whether tracing is enabled.
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

func createOTLPExporter(cfg *config.TracingConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
	}

	client := otlptracegrpc.NewClient(opts...)
	return otlptrace.New(context.Background(), client)
}
