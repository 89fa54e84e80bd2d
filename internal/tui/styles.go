package tui

import (
	"github.com/charmbracelet/lipgloss"

	"plate-service/internal/fuzzy"
)

type styles struct {
	title   lipgloss.Style
	status  lipgloss.Style
	exact   lipgloss.Style
	fuzzy   lipgloss.Style
	summary lipgloss.Style
	empty   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("62")).
			Padding(0, 1).
			Bold(true),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		exact:   lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		fuzzy:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")).Underline(true),
		summary: lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
	}
}

// plainStyles renders text without escape sequences.
func plainStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{title: plain, status: plain, exact: plain, fuzzy: plain, summary: plain, empty: plain}
}

// highlight is a fuzzy.StyleFunc for terminal output.
func (s styles) highlight(t fuzzy.Tag, ch string) string {
	switch t {
	case fuzzy.Exact:
		return s.exact.Render(ch)
	case fuzzy.Fuzzy:
		return s.fuzzy.Render(ch)
	default:
		return ch
	}
}
