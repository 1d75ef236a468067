// Package picker is the interactive mode: a textinput plus a viewport
// of incrementally fuzzy-filtered candidates. Accepting a candidate
// prints it to stdout so the picker composes with shell pipelines;
// the UI itself is drawn on stderr.
package picker

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/flavono123/fzgrep/internal/source"
	"github.com/flavono123/fzgrep/internal/theme"
)

const (
	resultsMaxHeight = 10
	scrollStep       = 1
)

type Model struct {
	keys    keyMap
	style   lipgloss.Style
	input   textinput.Model
	view    viewport.Model
	items   []source.Candidate
	cursor  int
	choice  *source.Candidate
	aborted bool
}

func NewModel(query string, items []source.Candidate) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.SetValue(query)
	ti.Focus()
	ti.Prompt = "> "
	ti.Width = 40

	return &Model{
		keys:  newKeyMap(),
		style: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
		input: ti,
		view:  viewport.New(0, resultsMaxHeight),
		items: items,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	prev := m.input.Value()
	im, iCmd := m.input.Update(msg)
	m.input = im
	cmds = append(cmds, iCmd)

	filtered := m.filter(m.input.Value())
	if prev != m.input.Value() {
		m.cursor = 0
		m.view.SetYOffset(0)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.view.Width = msg.Width - m.style.GetHorizontalFrameSize()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.up):
			if m.cursor > 0 {
				m.cursor--
			} else {
				m.view.ScrollUp(scrollStep)
			}
		case key.Matches(msg, m.keys.down):
			if m.cursor < min(len(filtered)-1, resultsMaxHeight-1) {
				m.cursor++
			} else {
				m.view.ScrollDown(scrollStep)
			}
		case key.Matches(msg, m.keys.accept):
			if index := m.cursor + m.view.YOffset; index < len(filtered) {
				chosen := filtered[index].candidate
				m.choice = &chosen
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.quit):
			m.aborted = true
			return m, tea.Quit
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	filtered := m.filter(m.input.Value())
	m.view.SetContent(m.renderResults(filtered))
	return m.style.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.input.View(),
			m.view.View(),
		),
	)
}

// Choice returns the accepted candidate, or false when the picker was
// dismissed.
func (m *Model) Choice() (source.Candidate, bool) {
	if m.aborted || m.choice == nil {
		return source.Candidate{}, false
	}
	return *m.choice, true
}

type filteredItem struct {
	candidate source.Candidate
	matched   []int
}

// filter narrows items to fuzzy matches of value, best first. An
// empty value keeps the original source order.
func (m *Model) filter(value string) []filteredItem {
	if value == "" {
		items := make([]filteredItem, 0, len(m.items))
		for _, c := range m.items {
			items = append(items, filteredItem{candidate: c})
		}
		return items
	}

	texts := make([]string, 0, len(m.items))
	for _, c := range m.items {
		texts = append(texts, c.Text)
	}

	var items []filteredItem
	for _, match := range fuzzy.Find(value, texts) {
		items = append(items, filteredItem{
			candidate: m.items[match.Index],
			matched:   match.MatchedIndexes,
		})
	}
	return items
}

func (m *Model) renderResults(filtered []filteredItem) string {
	if len(filtered) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Overlay0()).Render("No results found.")
	}

	hovered := m.cursor + m.view.YOffset
	lines := make([]string, 0, len(filtered))
	for i, item := range filtered {
		lines = append(lines, m.renderItem(item, i == hovered))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderItem(item filteredItem, hovered bool) string {
	line := lipgloss.NewStyle()
	if hovered {
		line = line.Background(theme.Overlay0())
	}
	return line.Render(highlight(item.candidate.Text, item.matched, line))
}

// highlight paints the matched runes, keeping the rest in the line's
// own style. matched holds the byte offsets the matcher reports.
func highlight(s string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return s
	}
	match := lipgloss.NewStyle().Foreground(theme.Blue())

	var b strings.Builder
	next := 0
	for i, r := range s {
		if next < len(matched) && matched[next] == i {
			b.WriteString(match.Render(string(r)))
			next++
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Run drives the picker to completion and returns the accepted
// candidate, if any.
func Run(query string, items []source.Candidate) (source.Candidate, bool, error) {
	model := NewModel(query, items)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	final, err := program.Run()
	if err != nil {
		return source.Candidate{}, false, fmt.Errorf("interactive mode: %w", err)
	}
	m, ok := final.(*Model)
	if !ok {
		return source.Candidate{}, false, nil
	}
	c, picked := m.Choice()
	return c, picked, nil
}
