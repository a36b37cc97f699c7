// Package metrics exports Prometheus metrics for lint runs, published
// diagnostics and history retention.
//
// All metrics are registered on a private registry owned by the Collector;
// Handler serves them. With metrics disabled in configuration the Collector
// still exists but records nothing, so callers never need nil checks.
package metrics
