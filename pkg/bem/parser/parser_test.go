package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/blocklint/pkg/bem/ast"
	bemErrors "mercator-hq/blocklint/pkg/bem/errors"
)

func TestParseBytes_Locations(t *testing.T) {
	src := `{"block": "text", "mods": {"size": "m"}, "content": [1, true, null]}`

	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	obj, ok := root.(*ast.Object)
	if !ok {
		t.Fatalf("root is %T, want *ast.Object", root)
	}
	if obj.Location != (ast.Location{Start: 0, End: len(src)}) {
		t.Errorf("object location = %v", obj.Location)
	}
	if len(obj.Children) != 3 {
		t.Fatalf("got %d properties, want 3", len(obj.Children))
	}

	block := obj.Children[0]
	if block.Key.Value != "block" || block.Key.Raw != `"block"` {
		t.Errorf("unexpected key %+v", block.Key)
	}
	if block.Key.Location != (ast.Location{Start: 1, End: 8}) {
		t.Errorf("key location = %v", block.Key.Location)
	}
	if got := src[block.Location.Start:block.Location.End]; got != `"block": "text"` {
		t.Errorf("property text = %q", got)
	}
	if s, ok := block.StringValue(); !ok || s != "text" {
		t.Errorf("block value = %q, %v", s, ok)
	}

	mods, ok := obj.Get("mods").ObjectValue()
	if !ok {
		t.Fatal("mods is not an object")
	}
	if got := src[mods.Location.Start:mods.Location.End]; got != `{"size": "m"}` {
		t.Errorf("mods text = %q", got)
	}

	content, ok := obj.Get("content").Value.(*ast.Array)
	if !ok {
		t.Fatal("content is not an array")
	}
	wantTypes := []ast.ValueType{ast.ValueTypeNumber, ast.ValueTypeBoolean, ast.ValueTypeNull}
	for i, c := range content.Children {
		v, ok := c.(*ast.Value)
		if !ok || v.Type != wantTypes[i] {
			t.Errorf("content[%d] = %#v, want %s", i, c, wantTypes[i])
		}
	}
}

func TestParseBytes_Scalars(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Value
	}{
		{"integer", `42`, ast.Value{Type: ast.ValueTypeNumber, Num: 42, Raw: "42"}},
		{"negative float exp", `-1.5e2`, ast.Value{Type: ast.ValueTypeNumber, Num: -150, Raw: "-1.5e2"}},
		{"escapes", `"a\"b\\c\nA"`, ast.Value{Type: ast.ValueTypeString, Str: "a\"b\\c\nA", Raw: `"a\"b\\c\nA"`}},
		{"surrogate pair", `"\ud83d\ude00"`, ast.Value{Type: ast.ValueTypeString, Str: "😀", Raw: `"\ud83d\ude00"`}},
		{"utf8", `"размер"`, ast.Value{Type: ast.ValueTypeString, Str: "размер", Raw: `"размер"`}},
		{"false", ` false `, ast.Value{Type: ast.ValueTypeBoolean, Raw: "false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			v, ok := root.(*ast.Value)
			if !ok {
				t.Fatalf("root is %T", root)
			}
			if v.Type != tt.want.Type || v.Str != tt.want.Str || v.Num != tt.want.Num || v.Raw != tt.want.Raw || v.Bool != tt.want.Bool {
				t.Errorf("got %+v, want %+v", *v, tt.want)
			}
		})
	}
}

func TestParseBytes_DuplicateKeysKeepOrder(t *testing.T) {
	root, err := Parse([]byte(`{"a": 1, "a": 2}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	obj := root.(*ast.Object)
	if len(obj.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(obj.Children))
	}
	if obj.Children[1].Value.(*ast.Value).Num != 2 {
		t.Error("second duplicate lost its value")
	}
}

func TestParseBytes_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		column  int
		message string
	}{
		{"empty", ``, 1, 1, "Unexpected end of input"},
		{"trailing comma", "{\n  \"a\": 1,\n}", 3, 1, "Unexpected token <}>"},
		{"unquoted key", `{block: 1}`, 1, 2, "Unexpected token <b>"},
		{"unterminated string", `{"a": "b`, 1, 7, "Unterminated string"},
		{"leading zero", `01`, 1, 2, "Unexpected token <1>"},
		{"bad literal", `[tru]`, 1, 2, "Unexpected token <t>"},
		{"trailing garbage", `{} {}`, 1, 4, "Unexpected token <{>"},
		{"bad escape", `"\x"`, 1, 2, "Invalid escape sequence"},
		{"control char", "\"a\tb\"", 1, 3, "Invalid control character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseBytes([]byte(tt.src), "doc.json")
			if err == nil {
				t.Fatal("expected error")
			}
			var perr *bemErrors.Error
			if !errors.As(err, &perr) {
				t.Fatalf("error is %T, want *errors.Error", err)
			}
			if perr.Type != bemErrors.ErrorTypeSyntax {
				t.Errorf("Type = %s, want syntax", perr.Type)
			}
			if perr.Line != tt.line || perr.Column != tt.column {
				t.Errorf("position = %d:%d, want %d:%d", perr.Line, perr.Column, tt.line, tt.column)
			}
			if !strings.HasPrefix(perr.Message, tt.message) {
				t.Errorf("Message = %q, want prefix %q", perr.Message, tt.message)
			}
			if perr.File != "doc.json" {
				t.Errorf("File = %q", perr.File)
			}
		})
	}
}

func TestParser_Limits(t *testing.T) {
	deep := strings.Repeat("[", 10) + strings.Repeat("]", 10)
	if _, err := NewParser().WithMaxDepth(5).ParseBytes([]byte(deep), ""); err == nil {
		t.Error("expected depth error")
	}
	if _, err := NewParser().WithMaxDepth(10).ParseBytes([]byte(deep), ""); err != nil {
		t.Errorf("depth 10 should parse: %v", err)
	}

	_, err := NewParser().WithMaxSize(4).ParseBytes([]byte(`{"a":1}`), "")
	var perr *bemErrors.Error
	if !errors.As(err, &perr) || perr.Type != bemErrors.ErrorTypeIO {
		t.Errorf("expected io error for oversized data, got %v", err)
	}
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.json")
	if err := os.WriteFile(path, []byte(`{"block": "page"}`), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	root, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !root.(*ast.Object).Has("block") {
		t.Error("expected block property")
	}

	_, err = NewParser().Parse(filepath.Join(dir, "missing.json"))
	var perr *bemErrors.Error
	if !errors.As(err, &perr) || perr.Type != bemErrors.ErrorTypeIO {
		t.Errorf("expected io error for missing file, got %v", err)
	}
}

func TestParseBytes_BOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{}`)...)
	root, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if root.Loc().Start != 3 {
		t.Errorf("object starts at %d, want 3", root.Loc().Start)
	}
}
