package lsp

import (
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"mercator-hq/blocklint/pkg/bem/diagnostic"
)

// DocumentURI returns the protocol URI for a file path or an existing URI.
func DocumentURI(pathOrURI string) protocol.DocumentURI {
	if strings.Contains(pathOrURI, "://") {
		return protocol.DocumentURI(uri.New(pathOrURI))
	}
	return protocol.DocumentURI(uri.File(pathOrURI))
}

// ToProtocol converts an assembled diagnostic. The rule key is published as
// the diagnostic code.
func ToProtocol(d diagnostic.Diagnostic) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(d.Range.Start.Line),
				Character: uint32(d.Range.Start.Character),
			},
			End: protocol.Position{
				Line:      uint32(d.Range.End.Line),
				Character: uint32(d.Range.End.Character),
			},
		},
		Severity: protocol.DiagnosticSeverity(d.Severity),
		Code:     string(d.Rule),
		Source:   d.Source,
		Message:  d.Message,
	}
}

// PublishParams builds the textDocument/publishDiagnostics payload for doc.
func PublishParams(doc *diagnostic.Document, diags []diagnostic.Diagnostic) *protocol.PublishDiagnosticsParams {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, ToProtocol(d))
	}
	return &protocol.PublishDiagnosticsParams{
		URI:         DocumentURI(doc.URI),
		Diagnostics: out,
	}
}
