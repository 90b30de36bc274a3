// Package menu implements the screen shown after generation, offering the
// quiz, the flashcards or a fresh start.
package menu

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// MenuScreen lists the study modes for the generated materials.
type MenuScreen struct {
	coord      *session.Coordinator
	menu       components.Menu
	questions  int
	flashcards int
}

var _ screen.Screen = (*MenuScreen)(nil)

// New creates a MenuScreen for the coordinator's current materials.
// Entries for empty lists are disabled.
func New(coord *session.Coordinator) *MenuScreen {
	var nq, nf int
	if m := coord.Materials(); m != nil {
		nq, nf = len(m.Questions), len(m.Flashcards)
	}

	items := []components.MenuItem{
		{
			Label:       "Start Quiz",
			Description: "Test your knowledge with multiple choice questions.",
			Action:      func() tea.Cmd { return router.Navigate(session.ModeQuiz) },
			Disabled:    nq == 0,
		},
		{
			Label:       "Flashcards",
			Description: "Memorize key concepts with flip cards.",
			Action:      func() tea.Cmd { return router.Navigate(session.ModeFlashcards) },
			Disabled:    nf == 0,
		},
		{
			Label:       "New Notes",
			Description: "Discard current session and start over.",
			Action:      func() tea.Cmd { return router.Navigate(session.ModeInput) },
		},
	}

	return &MenuScreen{
		coord:      coord,
		menu:       components.NewMenu(items),
		questions:  nq,
		flashcards: nf,
	}
}

func (s *MenuScreen) Init() tea.Cmd {
	return nil
}

func (s *MenuScreen) Title() string {
	return "Study Menu"
}

func (s *MenuScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+N", Description: "New notes"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *MenuScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Ready to Study!") + "\n")
	b.WriteString(theme.Subtitle.Render("We've generated your study materials from the notes provided.") + "\n\n")

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Quiz Questions", s.questions, cw/2),
		statCard("Flashcards", s.flashcards, cw/2),
	)
	b.WriteString(stats + "\n\n")
	b.WriteString(s.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func statCard(label string, n, width int) string {
	style := theme.Correct
	if n == 0 {
		style = theme.Inactive
	}
	content := style.Render(fmt.Sprintf("%d", n)) + "\n" + theme.Hint.Render(label)
	return components.Card(content, width-2, components.CardBorder(false))
}
