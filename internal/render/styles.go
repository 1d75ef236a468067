package render

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/flavono123/fzgrep/internal/theme"
)

// ColorMode mirrors grep's --color WHEN values.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Enabled resolves the mode against the actual output: auto means
// colored only when writing to a terminal.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isatty.IsTerminal(f.Fd())
	}
}

// Styles is the set of styles applied to the pieces of an output
// line, the same capabilities grep exposes: the matching characters,
// the line number, the source name, separators, the rest of the
// selected line and the surrounding context.
type Styles struct {
	Match      lipgloss.Style
	LineNumber lipgloss.Style
	SourceName lipgloss.Style
	Separator  lipgloss.Style
	Line       lipgloss.Style
	Context    lipgloss.Style
}

// DefaultStyles follows grep's default hues, drawn from the palette.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Match:      r.NewStyle().Bold(true).Foreground(theme.Red()),
		LineNumber: r.NewStyle().Foreground(theme.Green()),
		SourceName: r.NewStyle().Foreground(theme.Mauve()),
		Separator:  r.NewStyle().Foreground(theme.Teal()),
		Line:       r.NewStyle(),
		Context:    r.NewStyle(),
	}
}
