// Package telemetry groups the observability packages used by blocklint.
//
//   - logging: slog logger construction
//   - metrics: Prometheus counters and histograms for lint runs
//   - tracing: OpenTelemetry spans per lint run
//   - health: liveness and readiness endpoints for watch mode
package telemetry
