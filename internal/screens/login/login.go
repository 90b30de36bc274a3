// Package login implements the sign-in screen shown before the study screens.
package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/auth"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// SucceededMsg is emitted once the credentials were accepted.
type SucceededMsg struct{}

// checkedMsg carries the result of a credential check.
type checkedMsg struct {
	ok bool
}

const (
	fieldUsername = iota
	fieldPassword
)

// LoginScreen collects a username and password and checks them against the gate.
type LoginScreen struct {
	gate      *auth.Gate
	username  components.TextInput
	password  components.TextInput
	focus     int
	err       string
	signingIn bool
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates a LoginScreen checking against gate.
func New(gate *auth.Gate) *LoginScreen {
	s := &LoginScreen{
		gate:     gate,
		username: components.NewTextInput("Enter your username", 64),
		password: components.NewPasswordInput("Enter your password", 128),
	}
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.username.Focus()
}

func (s *LoginScreen) Title() string {
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign In"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Err returns the inline error, or "".
func (s *LoginScreen) Err() string {
	return s.err
}

// SigningIn reports whether a check is in progress.
func (s *LoginScreen) SigningIn() bool {
	return s.signingIn
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkedMsg:
		s.signingIn = false
		if msg.ok {
			return s, func() tea.Msg { return SucceededMsg{} }
		}
		s.err = auth.InvalidCredentialsMessage
		s.password.Reset()
		return s, s.setFocus(fieldPassword)

	case tea.KeyPressMsg:
		if s.signingIn {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			return s, s.setFocus(1 - s.focus)
		case "enter":
			if s.focus == fieldUsername {
				return s, s.setFocus(fieldPassword)
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	if s.focus == fieldUsername {
		s.username, cmd = s.username.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) setFocus(field int) tea.Cmd {
	s.focus = field
	if field == fieldUsername {
		s.password.Blur()
		return s.username.Focus()
	}
	s.username.Blur()
	return s.password.Focus()
}

// submit clears the previous error and checks the credentials in a command.
func (s *LoginScreen) submit() tea.Cmd {
	s.err = ""
	s.signingIn = true
	gate := s.gate
	username, password := s.username.Value(), s.password.Value()
	return func() tea.Msg {
		return checkedMsg{ok: gate.Check(username, password)}
	}
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 48 {
		cw = 48
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Welcome Back") + "\n")
	b.WriteString(theme.Subtitle.Render("Please sign in to access Study Buddy") + "\n\n")

	b.WriteString(fieldLabel("Username", s.focus == fieldUsername) + "\n")
	b.WriteString(s.username.View() + "\n\n")
	b.WriteString(fieldLabel("Password", s.focus == fieldPassword) + "\n")
	b.WriteString(s.password.View() + "\n\n")

	if s.err != "" {
		b.WriteString(theme.ErrorText.Render(s.err) + "\n\n")
	}

	label := "Sign In"
	if s.signingIn {
		label = "Signing In..."
	}
	b.WriteString(components.NewButton(label, "enter", !s.signingIn).View())

	card := components.Card(b.String(), cw, components.CardBorder(true))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return theme.Selected.Render(label)
	}
	return theme.Hint.Render(label)
}
