// Package parser reads JSON block documents into ast trees.
//
// The parser accepts strict JSON (RFC 8259): no comments, no trailing commas,
// double-quoted keys only. Every node carries the byte range it was read
// from so that diagnostics can point at the exact object or key.
//
// # Basic Usage
//
//	root, err := parser.NewParser().ParseBytes(data, "page.json")
//	if err != nil {
//	    // *errors.Error of type syntax or io, with line, column and context
//	}
//
// # Limits
//
// Documents larger than WithMaxSize (10MB by default) and nesting deeper than
// WithMaxDepth (512 by default) are rejected instead of exhausting memory or
// the stack.
package parser
