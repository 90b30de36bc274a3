// Package flashcards implements the flip-card review screen.
package flashcards

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	fc "github.com/abhisek/studybuddy/internal/flashcards"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// FlashcardsScreen drives a flashcards.Deck over the session's cards.
type FlashcardsScreen struct {
	deck *fc.Deck
}

var _ screen.Screen = (*FlashcardsScreen)(nil)

// New creates a FlashcardsScreen over the coordinator's flashcards.
func New(coord *session.Coordinator) *FlashcardsScreen {
	if m := coord.Materials(); m != nil {
		return &FlashcardsScreen{deck: fc.New(m.Flashcards)}
	}
	return &FlashcardsScreen{deck: fc.New(nil)}
}

// Deck exposes the underlying deck state.
func (s *FlashcardsScreen) Deck() *fc.Deck {
	return s.deck
}

func (s *FlashcardsScreen) Init() tea.Cmd {
	return nil
}

func (s *FlashcardsScreen) Title() string {
	return "Flashcards"
}

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	if s.deck.Unavailable() {
		return []layout.KeyHint{{Key: "Esc", Description: "Go Back"}}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Esc", Description: "Back to Menu"},
	}
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, router.Navigate(session.ModeMenu)
	case "space", " ", "f", "enter":
		s.deck.Flip()
	case "right", "l", "n":
		s.deck.Next()
	case "left", "h", "p":
		s.deck.Prev()
	}
	return s, nil
}

func (s *FlashcardsScreen) View(width, height int) string {
	if s.deck.Unavailable() {
		content := theme.Hint.Render("No flashcards available. Please regenerate.") + "\n\n" +
			theme.Hint.Render("esc to go back")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Card %d of %d", s.deck.Index()+1, s.deck.Len())) + "\n\n")

	side := s.deck.Face()
	label := theme.Hint.Render(side.String())
	text := theme.Body.Bold(side == fc.Front).Width(cw - 6).Align(lipgloss.Center).Render(s.deck.VisibleText())

	cardHeight := 7
	if !layout.IsCompactHeight(height) {
		cardHeight = 11
	}
	body := lipgloss.NewStyle().Height(cardHeight).AlignVertical(lipgloss.Center).
		Render(label + "\n\n" + text)
	b.WriteString(components.Card(body, cw, components.CardBorder(side == fc.Back)) + "\n")

	if side == fc.Front {
		b.WriteString(theme.Hint.Render("Press space to flip") + "\n\n")
	} else {
		b.WriteString("\n\n")
	}

	prev := components.NewButton("←", "", s.deck.HasPrev()).View()
	flip := components.NewButton("Flip Card", "space", true).View()
	next := components.NewButton("→", "", s.deck.HasNext()).View()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, prev, "  ", flip, "  ", next))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
