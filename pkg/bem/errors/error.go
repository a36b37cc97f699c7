package errors

import (
	"fmt"
	"strings"

	"mercator-hq/blocklint/pkg/bem/ast"
)

// ErrorType categorizes the type of error encountered while reading a document
// or its configuration.
type ErrorType string

const (
	ErrorTypeSyntax ErrorType = "syntax" // Malformed JSON
	ErrorTypeIO     ErrorType = "io"     // File I/O or size limit error
	ErrorTypeConfig ErrorType = "config" // Invalid lint configuration
)

// Error represents a rich error with location, context, and suggestions.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	File       string       // Document name, if known
	Field      string       // Configuration key, for config errors
	Location   ast.Location // Byte range in the document
	Line       int          // Line number (1-based, 0 when unknown)
	Column     int          // Column number (1-based, 0 when unknown)
	Context    string       // Surrounding lines of the document
	Suggestion string       // Suggested fix (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Type, e.Message))

	if e.Field != "" {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Field))
	}

	if e.Line > 0 {
		file := e.File
		if file == "" {
			file = "<input>"
		}
		sb.WriteString(fmt.Sprintf("  --> %s:%d:%d\n", file, e.Line, e.Column))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// ErrorList accumulates several errors instead of failing on the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddConfigError adds a config error for field with an optional suggestion.
func (el *ErrorList) AddConfigError(field, message, suggestion string) {
	el.Add(&Error{
		Type:       ErrorTypeConfig,
		Field:      field,
		Message:    message,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}
