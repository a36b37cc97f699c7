package lsp

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"mercator-hq/blocklint/pkg/bem/diagnostic"
)

// Writer emits publishDiagnostics notifications framed as on a language
// server connection (Content-Length headers). Documents without diagnostics
// are skipped unless PublishEmpty is set, which lets a client clear stale
// diagnostics.
type Writer struct {
	PublishEmpty bool

	mu     sync.Mutex
	stream jsonrpc2.Stream
}

// NewWriter creates a writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{stream: jsonrpc2.NewStream(writeOnly{w})}
}

// Publish writes the notification for one document. It reports whether a
// notification was written.
func (w *Writer) Publish(ctx context.Context, doc *diagnostic.Document, diags []diagnostic.Diagnostic) (bool, error) {
	if len(diags) == 0 && !w.PublishEmpty {
		return false, nil
	}

	msg, err := jsonrpc2.NewNotification(protocol.MethodTextDocumentPublishDiagnostics, PublishParams(doc, diags))
	if err != nil {
		return false, fmt.Errorf("failed to build notification: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.stream.Write(ctx, msg); err != nil {
		return false, fmt.Errorf("failed to write notification: %w", err)
	}
	return true, nil
}

// writeOnly adapts an io.Writer to the io.ReadWriteCloser a stream needs.
type writeOnly struct {
	io.Writer
}

func (writeOnly) Read([]byte) (int, error) { return 0, io.EOF }
func (writeOnly) Close() error             { return nil }
