package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards and lists so that
// sections on one screen line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border box at content width cw.
func Card(content string, cw int, border lipgloss.Style) string {
	return border.
		Border(lipgloss.RoundedBorder()).
		Width(cw).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// CardBorder returns the default card border style, or the highlighted
// one when active.
func CardBorder(active bool) lipgloss.Style {
	if active {
		return lipgloss.NewStyle().BorderForeground(theme.Primary)
	}
	return lipgloss.NewStyle().BorderForeground(theme.Border)
}
