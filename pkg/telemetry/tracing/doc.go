// Package tracing creates OpenTelemetry spans around lint runs.
//
// Tracing is off by default. When enabled with an endpoint, spans are
// exported over OTLP gRPC with a parent-based ratio sampler:
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    endpoint: localhost:4317
//	    insecure: true
//	    sample_ratio: 0.25
//
// When enabled without an endpoint, spans go to whatever provider the
// embedding program registered with otel.SetTracerProvider.
package tracing
