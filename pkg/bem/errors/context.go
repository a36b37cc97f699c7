package errors

import (
	"fmt"
	"strings"

	"mercator-hq/blocklint/pkg/bem/ast"
)

// ExtractContext renders the lines around the 1-based line and column of
// text, marking the offending line and column.
func ExtractContext(text string, line, column, contextLines int) string {
	if line <= 0 {
		return ""
	}

	idx := ast.NewLineIndex(text)
	errorLine := line - 1
	if errorLine >= idx.LineCount() {
		return ""
	}
	startLine := errorLine - contextLines
	endLine := errorLine + contextLines

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= idx.LineCount() {
		endLine = idx.LineCount() - 1
	}

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		lineNumStr := fmt.Sprintf("%*d", maxLineNumWidth, i+1)
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}

		sb.WriteString(fmt.Sprintf("%s %s | %s\n", prefix, lineNumStr, idx.LineText(i)))

		if i == errorLine && column > 0 {
			padding := strings.Repeat(" ", column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}

// AddContextToError fills err.Context with two lines on each side of the
// error line.
func AddContextToError(err *Error, text string) *Error {
	if err.Line > 0 {
		err.Context = ExtractContext(text, err.Line, err.Column, 2)
	}
	return err
}
