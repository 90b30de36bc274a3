package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Progress is a horizontal bar showing done out of total.
type Progress struct {
	Done  int
	Total int
	Width int
}

// NewProgress creates a bar of the given width.
func NewProgress(done, total, width int) Progress {
	return Progress{Done: done, Total: total, Width: width}
}

// Filled returns the number of filled cells.
func (p Progress) Filled() int {
	w := max(p.Width, 4)
	if p.Total <= 0 {
		return 0
	}
	return min(max(p.Done*w/p.Total, 0), w)
}

// View renders the bar.
func (p Progress) View() string {
	w := max(p.Width, 4)
	filled := p.Filled()
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", w-filled))
}
