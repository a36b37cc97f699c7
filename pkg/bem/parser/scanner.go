package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"mercator-hq/blocklint/pkg/bem/ast"
	bemErrors "mercator-hq/blocklint/pkg/bem/errors"
)

// scanner is a recursive descent reader for RFC 8259 JSON. It records the
// byte range of every node it builds.
type scanner struct {
	data     []byte
	pos      int
	depth    int
	maxDepth int
}

func (s *scanner) parseDocument() (ast.Node, error) {
	// A leading byte order mark is tolerated; offsets still count it.
	if len(s.data) >= 3 && s.data[0] == 0xEF && s.data[1] == 0xBB && s.data[2] == 0xBF {
		s.pos = 3
	}

	s.skipWhitespace()
	root, err := s.parseValue()
	if err != nil {
		return nil, err
	}

	s.skipWhitespace()
	if s.pos < len(s.data) {
		return nil, s.unexpected()
	}
	return root, nil
}

func (s *scanner) parseValue() (ast.Node, error) {
	if s.pos >= len(s.data) {
		return nil, s.errorf(s.pos, "Unexpected end of input")
	}

	switch c := s.data[s.pos]; {
	case c == '{':
		return s.parseObject()
	case c == '[':
		return s.parseArray()
	case c == '"':
		start := s.pos
		str, err := s.parseString()
		if err != nil {
			return nil, err
		}
		return &ast.Value{
			Type:     ast.ValueTypeString,
			Str:      str,
			Raw:      string(s.data[start:s.pos]),
			Location: ast.Location{Start: start, End: s.pos},
		}, nil
	case c == '-' || (c >= '0' && c <= '9'):
		return s.parseNumber()
	case c == 't':
		return s.parseLiteral("true", ast.ValueTypeBoolean, true)
	case c == 'f':
		return s.parseLiteral("false", ast.ValueTypeBoolean, false)
	case c == 'n':
		return s.parseLiteral("null", ast.ValueTypeNull, false)
	default:
		return nil, s.unexpected()
	}
}

func (s *scanner) enter() error {
	s.depth++
	if s.depth > s.maxDepth {
		return s.errorf(s.pos, "Maximum nesting depth of %d exceeded", s.maxDepth)
	}
	return nil
}

func (s *scanner) parseObject() (ast.Node, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer func() { s.depth-- }()

	obj := &ast.Object{Children: make([]*ast.Property, 0)}
	obj.Location.Start = s.pos
	s.pos++ // {

	s.skipWhitespace()
	if s.peek() == '}' {
		s.pos++
		obj.Location.End = s.pos
		return obj, nil
	}

	for {
		s.skipWhitespace()
		if s.peek() != '"' {
			return nil, s.unexpected()
		}

		keyStart := s.pos
		key, err := s.parseString()
		if err != nil {
			return nil, err
		}
		ident := &ast.Identifier{
			Value:    key,
			Raw:      string(s.data[keyStart:s.pos]),
			Location: ast.Location{Start: keyStart, End: s.pos},
		}

		s.skipWhitespace()
		if s.peek() != ':' {
			return nil, s.unexpected()
		}
		s.pos++

		s.skipWhitespace()
		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}

		obj.Children = append(obj.Children, &ast.Property{
			Key:      ident,
			Value:    value,
			Location: ast.Location{Start: keyStart, End: value.Loc().End},
		})

		s.skipWhitespace()
		switch s.peek() {
		case ',':
			s.pos++
		case '}':
			s.pos++
			obj.Location.End = s.pos
			return obj, nil
		default:
			return nil, s.unexpected()
		}
	}
}

func (s *scanner) parseArray() (ast.Node, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer func() { s.depth-- }()

	arr := &ast.Array{Children: make([]ast.Node, 0)}
	arr.Location.Start = s.pos
	s.pos++ // [

	s.skipWhitespace()
	if s.peek() == ']' {
		s.pos++
		arr.Location.End = s.pos
		return arr, nil
	}

	for {
		s.skipWhitespace()
		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		arr.Children = append(arr.Children, value)

		s.skipWhitespace()
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
			s.pos++
			arr.Location.End = s.pos
			return arr, nil
		default:
			return nil, s.unexpected()
		}
	}
}

// parseString decodes the string literal starting at the opening quote.
func (s *scanner) parseString() (string, error) {
	start := s.pos
	s.pos++ // opening quote

	var sb strings.Builder
	for {
		if s.pos >= len(s.data) {
			return "", s.errorf(start, "Unterminated string")
		}

		c := s.data[s.pos]
		switch {
		case c == '"':
			s.pos++
			return sb.String(), nil
		case c == '\\':
			if err := s.parseEscape(&sb); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", s.errorf(s.pos, "Invalid control character in string")
		case c < utf8.RuneSelf:
			sb.WriteByte(c)
			s.pos++
		default:
			r, size := utf8.DecodeRune(s.data[s.pos:])
			sb.WriteRune(r)
			s.pos += size
		}
	}
}

func (s *scanner) parseEscape(sb *strings.Builder) error {
	escStart := s.pos
	s.pos++ // backslash
	if s.pos >= len(s.data) {
		return s.errorf(escStart, "Unterminated string")
	}

	c := s.data[s.pos]
	s.pos++
	switch c {
	case '"', '\\', '/':
		sb.WriteByte(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := s.readHex4(escStart)
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			if s.pos+1 < len(s.data) && s.data[s.pos] == '\\' && s.data[s.pos+1] == 'u' {
				save := s.pos
				s.pos += 2
				r2, err := s.readHex4(save)
				if err != nil {
					return err
				}
				if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
					sb.WriteRune(dec)
					return nil
				}
				s.pos = save
			}
			r = utf8.RuneError
		}
		sb.WriteRune(r)
	default:
		return s.errorf(escStart, "Invalid escape sequence '\\%c'", c)
	}
	return nil
}

func (s *scanner) readHex4(escStart int) (rune, error) {
	if s.pos+4 > len(s.data) {
		return 0, s.errorf(escStart, "Invalid unicode escape")
	}
	v, err := strconv.ParseUint(string(s.data[s.pos:s.pos+4]), 16, 32)
	if err != nil {
		return 0, s.errorf(escStart, "Invalid unicode escape")
	}
	s.pos += 4
	return rune(v), nil
}

func (s *scanner) parseNumber() (ast.Node, error) {
	start := s.pos

	if s.peek() == '-' {
		s.pos++
	}

	switch c := s.peek(); {
	case c == '0':
		s.pos++
	case c >= '1' && c <= '9':
		s.skipDigits()
	default:
		return nil, s.unexpected()
	}

	if s.peek() == '.' {
		s.pos++
		if !isDigit(s.peek()) {
			return nil, s.unexpected()
		}
		s.skipDigits()
	}

	if c := s.peek(); c == 'e' || c == 'E' {
		s.pos++
		if c := s.peek(); c == '+' || c == '-' {
			s.pos++
		}
		if !isDigit(s.peek()) {
			return nil, s.unexpected()
		}
		s.skipDigits()
	}

	raw := string(s.data[start:s.pos])
	// The grammar was checked above; out of range literals saturate to ±Inf.
	num, _ := strconv.ParseFloat(raw, 64)

	return &ast.Value{
		Type:     ast.ValueTypeNumber,
		Num:      num,
		Raw:      raw,
		Location: ast.Location{Start: start, End: s.pos},
	}, nil
}

func (s *scanner) parseLiteral(word string, typ ast.ValueType, b bool) (ast.Node, error) {
	start := s.pos
	if len(s.data)-s.pos < len(word) || string(s.data[s.pos:s.pos+len(word)]) != word {
		return nil, s.unexpected()
	}
	s.pos += len(word)
	return &ast.Value{
		Type:     typ,
		Bool:     b,
		Raw:      word,
		Location: ast.Location{Start: start, End: s.pos},
	}, nil
}

func (s *scanner) skipWhitespace() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) skipDigits() {
	for isDigit(s.peek()) {
		s.pos++
	}
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.data) {
		return 0
	}
	return s.data[s.pos]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// unexpected reports the byte at the current position.
func (s *scanner) unexpected() error {
	if s.pos >= len(s.data) {
		return s.errorf(s.pos, "Unexpected end of input")
	}
	r, _ := utf8.DecodeRune(s.data[s.pos:])
	return s.errorf(s.pos, "Unexpected token <%c>", r)
}

func (s *scanner) errorf(offset int, format string, args ...any) error {
	pos := ast.NewLineIndex(string(s.data)).Position(offset)
	end := offset + 1
	if end > len(s.data) {
		end = len(s.data)
	}
	return &bemErrors.Error{
		Type:       bemErrors.ErrorTypeSyntax,
		Message:    fmt.Sprintf(format, args...),
		Location:   ast.Location{Start: offset, End: end},
		Line:       pos.Line + 1,
		Column:     pos.Character + 1,
		Suggestion: "Check JSON syntax (quotes, commas, brackets)",
	}
}
