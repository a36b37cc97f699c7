package logging

import "context"

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for lint run IDs.
	RunIDKey contextKey = "run_id"

	// FileKey is the context key for the document being linted.
	FileKey contextKey = "file"
)

// WithRunID adds a lint run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the lint run ID from the context.
func GetRunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}
	return ""
}

// WithFile adds the document path to the context.
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, FileKey, file)
}

// GetFile retrieves the document path from the context.
func GetFile(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if file, ok := ctx.Value(FileKey).(string); ok {
		return file
	}
	return ""
}
