// Package router binds the active screen to the session coordinator's mode.
package router

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// NavigateMsg asks the coordinator to move to Mode. Refused transitions
// leave the current screen in place.
type NavigateMsg struct {
	Mode session.Mode
}

// Navigate returns a command that emits NavigateMsg{Mode: m}.
func Navigate(m session.Mode) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Mode: m} }
}

// GeneratedMsg carries the result of one generation request back to the
// update loop.
type GeneratedMsg struct {
	Ticket    session.Ticket
	Materials *studygen.Materials
	Err       error
}

// Factory builds the screen for a mode.
type Factory func(mode session.Mode) screen.Screen

// Router keeps exactly one screen, the one for the coordinator's mode,
// and rebuilds it whenever the mode changes.
type Router struct {
	coord   *session.Coordinator
	factory Factory
	mode    session.Mode
	active  screen.Screen
	logger  *slog.Logger
}

// New creates a Router showing the screen for the coordinator's current mode.
func New(coord *session.Coordinator, factory Factory, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		coord:   coord,
		factory: factory,
		mode:    coord.Mode(),
		active:  factory(coord.Mode()),
		logger:  logger,
	}
}

// Init initializes the active screen.
func (r *Router) Init() tea.Cmd {
	return r.active.Init()
}

// Active returns the active screen.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Mode returns the mode the active screen was built for.
func (r *Router) Mode() session.Mode {
	return r.mode
}

// Update handles navigation and generation results, forwards everything
// else to the active screen, then syncs the screen with the mode.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NavigateMsg:
		if err := r.coord.SelectMode(msg.Mode); err != nil {
			r.logger.Debug("navigation refused", "from", r.coord.Mode().String(), "to", msg.Mode.String(), "error", err)
		}
		return r.sync()

	case GeneratedMsg:
		r.resolve(msg)
		return r.sync()
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return tea.Batch(cmd, r.sync())
}

func (r *Router) resolve(msg GeneratedMsg) {
	sessionID := r.coord.Session().ID
	if !r.coord.Resolve(msg.Ticket, msg.Materials, msg.Err) {
		r.logger.Info("discarding stale generation result", "ticket", uint64(msg.Ticket))
		return
	}
	if err := r.coord.Err(); err != nil {
		r.logger.Error("study material generation failed", "error", err, "session_id", sessionID)
		return
	}
	if m := r.coord.Materials(); m != nil {
		r.logger.Info("study materials ready",
			"questions", len(m.Questions),
			"flashcards", len(m.Flashcards),
			"session_id", sessionID)
	}
}

// sync rebuilds the active screen when the coordinator's mode changed.
func (r *Router) sync() tea.Cmd {
	if r.coord.Mode() == r.mode {
		return nil
	}
	r.mode = r.coord.Mode()
	r.active = r.factory(r.mode)
	return r.active.Init()
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.active.View(width, height)
}
