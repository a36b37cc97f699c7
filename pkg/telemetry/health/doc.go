// Package health serves the liveness, readiness and version endpoints that
// `blocklint lint --watch` exposes next to the metrics endpoint.
//
//   - /health answers 200 while the process runs.
//   - /ready runs the registered checks (history store, configuration) and
//     answers 503 when any of them fails.
//   - /version reports build information.
//
// Usage:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("history", store.Ping)
//	mux := http.NewServeMux()
//	health.Register(mux, checker, version, commit, buildDate)
package health
