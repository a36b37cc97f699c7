package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys set on lint spans.
const (
	AttrRunID       = "blocklint.run_id"
	AttrFile        = "blocklint.file"
	AttrBytes       = "blocklint.document.bytes"
	AttrDiagnostics = "blocklint.diagnostics"
	AttrDropped     = "blocklint.problems.dropped"
	AttrParseError  = "blocklint.parse_error"
	AttrDisabled    = "blocklint.disabled"
)

// SetDocumentAttributes records which document a span lints.
func SetDocumentAttributes(span trace.Span, runID, file string, size int) {
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String(AttrRunID, runID),
		attribute.String(AttrFile, file),
		attribute.Int(AttrBytes, size),
	)
}

// SetResultAttributes records the outcome of a lint run.
func SetResultAttributes(span trace.Span, diagnostics, dropped int) {
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.Int(AttrDiagnostics, diagnostics),
		attribute.Int(AttrDropped, dropped),
	)
}

// SetError marks the span as failed.
func SetError(span trace.Span, err error) {
	if err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetOK marks the span as successful.
func SetOK(span trace.Span) {
	if !span.IsRecording() {
		return
	}
	span.SetStatus(codes.Ok, "")
}
