// Package screen defines what the router needs from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Screen is one mode's view. Screens read and change session state only
// through the coordinator they were built with.
type Screen interface {
	// Init returns the first command, e.g. focusing an input.
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
