// Package tui is the interactive plate search: a query line on top and the
// matching plates below, refreshed on every keystroke.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"plate-service/internal/fuzzy"
	"plate-service/internal/service"
)

const noResultsText = "No matching results"

// Searcher is the part of service.PlateService the UI needs.
type Searcher interface {
	Search(query string) service.SearchResult
	Status() service.Status
}

type Model struct {
	searcher Searcher
	input    textinput.Model
	help     help.Model
	keys     keyMap
	styles   styles

	result service.SearchResult
	width  int
	height int
}

func New(searcher Searcher) Model {
	ti := textinput.New()
	ti.Placeholder = "type part of a plate, e.g. 8C1"
	ti.Prompt = "Search: "
	ti.CharLimit = 32
	ti.Focus()

	return Model{
		searcher: searcher,
		input:    ti,
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   defaultStyles(),
		result:   searcher.Search(""),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.input.Reset()
			m.result = m.searcher.Search("")
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != before {
		m.result = m.searcher.Search(q)
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Plate search"))
	b.WriteString("  ")
	b.WriteString(m.styles.status.Render(m.statusLine()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.result.NoResults {
		b.WriteString(m.styles.empty.Render(noResultsText))
		b.WriteString("\n")
	}

	hits := m.result.Results
	limit := m.visibleResults()
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	for _, hit := range hits {
		b.WriteString("  ")
		b.WriteString(fuzzy.Highlight(hit.Plate, hit.Tags, m.styles.highlight))
		if hit.Summary != "" {
			b.WriteString("  ")
			b.WriteString(m.styles.summary.Render(hit.Summary))
		}
		b.WriteString("\n")
	}
	if more := len(m.result.Results) - len(hits); more > 0 {
		b.WriteString(m.styles.status.Render(fmt.Sprintf("  ... %d more", more)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	st := m.searcher.Status()
	if st.Demo {
		return "demo plates"
	}
	line := fmt.Sprintf("%d plates", st.Count)
	if st.LoadedAt != nil {
		line += " loaded " + st.LoadedAt.Local().Format("2006-01-02 15:04")
	}
	return line
}

// visibleResults is how many result lines fit under the header; zero until
// the terminal size is known.
func (m Model) visibleResults() int {
	if m.height == 0 {
		return 0
	}
	// title, blank, input, blank, more, blank, help
	const chrome = 7
	if n := m.height - chrome; n > 0 {
		return n
	}
	return 1
}
