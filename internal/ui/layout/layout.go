// Package layout draws the frame shared by every screen: a header bar,
// the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	CompactHeightThreshold = 30
)

// appName is shown at the left of the header.
const appName = "Study Buddy"

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// BodyHeight returns the rows left for the screen body between header and footer.
func BodyHeight(total int, header, footer string) int {
	return max(total-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at least %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// bar wraps content in the rounded box used by header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader renders the header bar: app name and screen title on the
// left, status on the right.
func RenderHeader(title, status string, width int) string {
	left := "  " + lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(appName)
	if title != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ·  ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status) + "  "

	// Border and padding take four columns.
	gap := max(width-4-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return bar(left+strings.Repeat(" ", gap)+right, width)
}

// RenderFooter renders the footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, key.Render(h.Key)+" "+desc.Render(h.Description))
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, body and footer, padding the body to fill height.
func RenderFrame(header, body, footer string, width, height int) string {
	body = lipgloss.NewStyle().
		Width(width).
		Height(BodyHeight(height, header, footer)).
		Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
