// Package logging builds the slog loggers used across blocklint.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "debug", Format: "json"})
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithFile(ctx, "page.json")
//	logger.DebugContext(ctx, "lint run finished", "diagnostics", 3)
//	// ... run_id=... file=page.json diagnostics=3
//
// Logs go to stderr by default; stdout is reserved for lint output.
package logging
