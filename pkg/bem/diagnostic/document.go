package diagnostic

import (
	"path"
	"path/filepath"
	"strings"

	"mercator-hq/blocklint/pkg/bem/ast"
)

// Document is the text a set of problems was found in.
type Document struct {
	// URI is the path or URI the document was read from.
	URI string

	// Name is the base name of URI, published as the diagnostic source.
	Name string

	Text  []byte
	lines *ast.LineIndex
}

// NewDocument creates a document for the given path or URI.
func NewDocument(uri string, text []byte) *Document {
	return &Document{
		URI:   uri,
		Name:  baseName(uri),
		Text:  text,
		lines: ast.NewLineIndex(string(text)),
	}
}

// Range converts a byte range into positions.
func (d *Document) Range(loc ast.Location) Range {
	return Range{
		Start: d.lines.Position(loc.Start),
		End:   d.lines.Position(loc.End),
	}
}

func baseName(uri string) string {
	if uri == "" {
		return ""
	}
	if i := strings.IndexAny(uri, "?#"); i >= 0 && strings.Contains(uri, "://") {
		uri = uri[:i]
	}
	return path.Base(filepath.ToSlash(uri))
}
