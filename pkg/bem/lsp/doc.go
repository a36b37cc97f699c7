// Package lsp translates diagnostics into Language Server Protocol
// structures and writes publishDiagnostics notifications.
package lsp
