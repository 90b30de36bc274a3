// Package app wires the terminal UI: the login gate, the mode router and
// the shared frame.
package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/auth"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/flashcards"
	"github.com/abhisek/studybuddy/internal/screens/login"
	"github.com/abhisek/studybuddy/internal/screens/menu"
	"github.com/abhisek/studybuddy/internal/screens/noteinput"
	"github.com/abhisek/studybuddy/internal/screens/quiz"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/studygen"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Options holds the dependencies of the terminal UI.
type Options struct {
	Generator studygen.Generator

	// Gate, when non-nil, shows the login screen first.
	Gate *auth.Gate

	Logger *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	coord  *session.Coordinator
	router *router.Router
	login  *login.LoginScreen
	logger *slog.Logger
	width  int
	height int
}

// NewAppModel creates the root model with a fresh session.
func NewAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	coord := session.NewCoordinator()

	m := AppModel{
		coord:  coord,
		router: router.New(coord, ScreenFactory(coord, opts.Generator), opts.Logger),
		logger: opts.Logger,
	}
	if opts.Gate != nil {
		m.login = login.New(opts.Gate)
	}
	return m
}

// ScreenFactory returns the router factory building one screen per mode.
func ScreenFactory(coord *session.Coordinator, gen studygen.Generator) router.Factory {
	return func(mode session.Mode) screen.Screen {
		switch mode {
		case session.ModeMenu:
			return menu.New(coord)
		case session.ModeQuiz:
			return quiz.New(coord)
		case session.ModeFlashcards:
			return flashcards.New(coord)
		default:
			return noteinput.New(coord, gen)
		}
	}
}

// Coordinator returns the session coordinator.
func (m AppModel) Coordinator() *session.Coordinator {
	return m.coord
}

// LoggedIn reports whether the login gate has been passed.
func (m AppModel) LoggedIn() bool {
	return m.login == nil
}

// Active returns the screen currently shown.
func (m AppModel) Active() screen.Screen {
	if m.login != nil {
		return m.login
	}
	return m.router.Active()
}

func (m AppModel) Init() tea.Cmd {
	if m.login != nil {
		return m.login.Init()
	}
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case login.SucceededMsg:
		m.login = nil
		m.logger.Info("login accepted", "session_id", m.coord.Session().ID)
		return m, m.router.Init()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			if m.login == nil && m.coord.Mode() != session.ModeInput {
				return m, m.router.Update(router.NavigateMsg{Mode: session.ModeInput})
			}
			return m, nil
		}
	}

	if m.login != nil {
		_, cmd := m.login.Update(msg)
		return m, cmd
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.Active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	content := active.View(m.width, layout.BodyHeight(m.height, header, footer))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// status summarizes the session's materials for the header.
func (m AppModel) status() string {
	if m.login != nil {
		return ""
	}
	if m.coord.Loading() {
		return "generating"
	}
	mat := m.coord.Materials()
	if mat == nil {
		return ""
	}
	return fmt.Sprintf("%d Q · %d cards", len(mat.Questions), len(mat.Flashcards))
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
