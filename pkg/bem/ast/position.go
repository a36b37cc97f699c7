package ast

import "sort"

// Position is a zero-based line and character. Character counts UTF-16 code
// units, which is what editors speaking the language server protocol expect.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// LineIndex converts byte offsets of one document into Positions.
type LineIndex struct {
	text  string
	lines []int // byte offset of the start of each line
}

// NewLineIndex indexes the line starts of text.
func NewLineIndex(text string) *LineIndex {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			lines = append(lines, i+1)
		}
	}
	return &LineIndex{text: text, lines: lines}
}

// LineCount returns the number of lines in the document.
func (li *LineIndex) LineCount() int {
	return len(li.lines)
}

// Position returns the position of offset. Offsets outside the document are
// clamped to its bounds.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.text) {
		offset = len(li.text)
	}
	line := sort.Search(len(li.lines), func(i int) bool { return li.lines[i] > offset }) - 1
	start := li.lines[line]

	char := 0
	for _, r := range li.text[start:offset] {
		if r == '\n' || r == '\r' {
			break
		}
		if r >= 0x10000 {
			char += 2
		} else {
			char++
		}
	}
	return Position{Line: line, Character: char}
}

// LineText returns the text of the zero-based line without its terminator.
func (li *LineIndex) LineText(line int) string {
	if line < 0 || line >= len(li.lines) {
		return ""
	}
	start := li.lines[line]
	end := len(li.text)
	if line+1 < len(li.lines) {
		end = li.lines[line+1]
	}
	s := li.text[start:end]
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
