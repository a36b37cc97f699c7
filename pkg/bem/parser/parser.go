package parser

import (
	"fmt"
	"os"

	"mercator-hq/blocklint/pkg/bem/ast"
	bemErrors "mercator-hq/blocklint/pkg/bem/errors"
)

// Parser parses JSON block documents into syntax trees with byte locations.
type Parser struct {
	maxSize  int64 // Maximum document size in bytes (default: 10MB)
	maxDepth int   // Maximum nesting of objects and arrays (default: 512)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxSize:  10 * 1024 * 1024, // 10MB
		maxDepth: 512,
	}
}

// WithMaxSize sets the maximum document size limit.
func (p *Parser) WithMaxSize(size int64) *Parser {
	if size > 0 {
		p.maxSize = size
	}
	return p
}

// WithMaxDepth sets the maximum nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	if depth > 0 {
		p.maxDepth = depth
	}
	return p
}

// Parse reads and parses the document at path.
func (p *Parser) Parse(path string) (ast.Node, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &bemErrors.Error{
			Type:    bemErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Failed to access file: %v", err),
			File:    path,
		}
	}

	if fileInfo.Size() > p.maxSize {
		return nil, &bemErrors.Error{
			Type:    bemErrors.ErrorTypeIO,
			Message: fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxSize),
			File:    path,
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &bemErrors.Error{
			Type:    bemErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Failed to read file: %v", err),
			File:    path,
		}
	}

	return p.ParseBytes(data, path)
}

// ParseBytes parses a document held in memory. sourceName is only used in
// error messages.
func (p *Parser) ParseBytes(data []byte, sourceName string) (ast.Node, error) {
	if int64(len(data)) > p.maxSize {
		return nil, &bemErrors.Error{
			Type:    bemErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Data size %d exceeds maximum %d bytes", len(data), p.maxSize),
			File:    sourceName,
		}
	}

	s := &scanner{
		data:     data,
		maxDepth: p.maxDepth,
	}
	root, err := s.parseDocument()
	if err != nil {
		if e, ok := err.(*bemErrors.Error); ok {
			e.File = sourceName
			bemErrors.AddContextToError(e, string(data))
		}
		return nil, err
	}
	return root, nil
}

// Parse parses data with the default parser configuration.
func Parse(data []byte) (ast.Node, error) {
	return NewParser().ParseBytes(data, "")
}
