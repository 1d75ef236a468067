// Package render turns ranked matches into output lines: an optional
// source name and line number prefix followed by the candidate text
// with the matched characters emphasized. It performs no reordering
// and no filtering.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/flavono123/fzgrep/internal/pipeline"
	"github.com/flavono123/fzgrep/internal/source"
)

// Options configures a Renderer.
type Options struct {
	// ShowName prefixes every line with the source name.
	ShowName bool

	// ShowLine prefixes every line with its line number.
	ShowLine bool

	// Color enables styled output. When false the output is plain
	// text, safe to pipe.
	Color bool

	Styles Styles
}

// Renderer is a pure formatting step over ranked matches.
type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Result formats one match, including its surrounding context lines.
// The returned string may span multiple lines and carries no trailing
// newline.
func (r *Renderer) Result(m pipeline.Match) string {
	var b strings.Builder

	for i, line := range m.Before {
		no := m.Origin.Line - len(m.Before) + i
		r.writeContextLine(&b, line, m.Origin.Path, no)
		b.WriteByte('\n')
	}

	r.writePrefix(&b, m.Origin.Name(), m.Origin.Line)
	r.writeEmphasized(&b, m.Text, m.Positions)

	for i, line := range m.After {
		b.WriteByte('\n')
		r.writeContextLine(&b, line, m.Origin.Path, m.Origin.Line+i+1)
	}

	return b.String()
}

func (r *Renderer) writeContextLine(b *strings.Builder, text, path string, line int) {
	r.writePrefix(b, source.Origin{Path: path}.Name(), line)
	r.writePiece(b, text, r.opts.Styles.Context)
}

func (r *Renderer) writePrefix(b *strings.Builder, name string, line int) {
	if r.opts.ShowName {
		r.writePiece(b, name, r.opts.Styles.SourceName)
		r.writePiece(b, ":", r.opts.Styles.Separator)
	}
	if r.opts.ShowLine && line > 0 {
		r.writePiece(b, strconv.Itoa(line), r.opts.Styles.LineNumber)
		r.writePiece(b, ":", r.opts.Styles.Separator)
	}
}

// writeEmphasized renders text with the matched positions styled.
// Adjacent positions are coalesced into single runs so the escape
// sequences stay readable. Stripped of styling the output is exactly
// the input text.
func (r *Renderer) writeEmphasized(b *strings.Builder, text string, positions []int) {
	if !r.opts.Color || len(positions) == 0 {
		r.writePiece(b, text, r.opts.Styles.Line)
		return
	}

	runes := []rune(text)
	prev := 0
	for _, run := range groupRuns(positions) {
		if run.start > prev {
			r.writePiece(b, string(runes[prev:run.start]), r.opts.Styles.Line)
		}
		r.writePiece(b, string(runes[run.start:run.end]), r.opts.Styles.Match)
		prev = run.end
	}
	if prev < len(runes) {
		r.writePiece(b, string(runes[prev:]), r.opts.Styles.Line)
	}
}

func (r *Renderer) writePiece(b *strings.Builder, piece string, style lipgloss.Style) {
	if piece == "" {
		return
	}
	if !r.opts.Color {
		b.WriteString(piece)
		return
	}
	b.WriteString(style.Render(piece))
}

type runRange struct {
	start, end int // [start, end) in rune indices
}

// groupRuns coalesces a strictly increasing index sequence into
// half-open runs of consecutive indices.
func groupRuns(positions []int) []runRange {
	var runs []runRange
	for _, pos := range positions {
		if n := len(runs); n > 0 && runs[n-1].end == pos {
			runs[n-1].end = pos + 1
			continue
		}
		runs = append(runs, runRange{start: pos, end: pos + 1})
	}
	return runs
}
