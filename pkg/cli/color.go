package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode selects when output is coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// UseColor reports whether output written to w should be coloured. In auto
// mode only terminals get colour, and NO_COLOR turns it off.
func UseColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Palette holds the formatting functions of the text reporter.
type Palette struct {
	File    func(string, ...any) string
	Error   func(string, ...any) string
	Warning func(string, ...any) string
	Info    func(string, ...any) string
	Hint    func(string, ...any) string
	Faint   func(string, ...any) string
}

// NewPalette returns a colouring palette, or a plain one when enabled is
// false.
func NewPalette(enabled bool) *Palette {
	if !enabled {
		return &Palette{
			File:    fmt.Sprintf,
			Error:   fmt.Sprintf,
			Warning: fmt.Sprintf,
			Info:    fmt.Sprintf,
			Hint:    fmt.Sprintf,
			Faint:   fmt.Sprintf,
		}
	}
	return &Palette{
		File:    colorFunc(color.Bold, color.Underline),
		Error:   colorFunc(color.FgRed),
		Warning: colorFunc(color.FgYellow),
		Info:    colorFunc(color.FgCyan),
		Hint:    colorFunc(color.FgGreen),
		Faint:   colorFunc(color.Faint),
	}
}

func colorFunc(attrs ...color.Attribute) func(string, ...any) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintfFunc()
}
