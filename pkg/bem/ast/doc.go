// Package ast defines the syntax tree of a BEM block description document.
//
// A document is plain JSON. The parser turns it into a tree of four node
// kinds, each carrying the byte range it was read from:
//
//	Object    ordered *Property children (duplicates kept)
//	Array     ordered Node children
//	Property  key Identifier and value Node
//	Value     string, number, boolean or null literal
//
// # Locations
//
// Locations are byte offsets. LineIndex turns them into zero-based
// line/character positions for display:
//
//	idx := ast.NewLineIndex(text)
//	pos := idx.Position(obj.Location.Start)
//
// # Immutability
//
// Trees are never modified after parsing. Linters and other consumers only
// read them, so a tree may be shared between goroutines.
package ast
