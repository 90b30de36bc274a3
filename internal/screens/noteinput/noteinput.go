// Package noteinput implements the screen where lecture notes are pasted
// and study material generation is started.
package noteinput

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/studygen"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const placeholder = `Example usage:

Photosynthesis is the process by which plants use sunlight, water, and carbon dioxide to create oxygen and energy in the form of sugar.

Key components:
1. Chlorophyll: Green pigment that absorbs light
2. Stomata: Pores for gas exchange
3. Thylakoids: Site of light-dependent reactions

...paste your full lecture content here!`

// NoteInputScreen edits the session's notes and triggers generation.
type NoteInputScreen struct {
	coord     *session.Coordinator
	generator studygen.Generator
	editor    textarea.Model
	spinner   spinner.Model
}

var _ screen.Screen = (*NoteInputScreen)(nil)

// New creates a NoteInputScreen bound to coord. Existing notes are loaded
// into the editor.
func New(coord *session.Coordinator, gen studygen.Generator) *NoteInputScreen {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetValue(coord.Session().Notes)

	return &NoteInputScreen{
		coord:     coord,
		generator: gen,
		editor:    ta,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *NoteInputScreen) Init() tea.Cmd {
	cmd := s.editor.Focus()
	if s.coord.Loading() {
		return tea.Batch(cmd, s.spinner.Tick)
	}
	return cmd
}

func (s *NoteInputScreen) Title() string {
	return "Lecture Notes"
}

func (s *NoteInputScreen) KeyHints() []layout.KeyHint {
	if s.coord.Loading() {
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Generate"},
	}
	if s.coord.Err() != nil {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Dismiss error"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *NoteInputScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.coord.Loading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if s.coord.Loading() {
			return s, nil
		}
		switch msg.String() {
		case "ctrl+s":
			return s, s.generate()
		case "esc":
			s.coord.DismissError()
			return s, nil
		}
	}

	if s.coord.Loading() {
		return s, nil
	}

	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	// Loading was checked above, so SetNotes cannot fail here.
	_ = s.coord.SetNotes(s.editor.Value())
	return s, cmd
}

// generate asks the coordinator for a ticket and starts the request.
// Empty notes are refused without a request.
func (s *NoteInputScreen) generate() tea.Cmd {
	if err := s.coord.SetNotes(s.editor.Value()); err != nil {
		return nil
	}
	ticket, err := s.coord.BeginGenerate()
	if err != nil {
		return nil
	}

	gen := s.generator
	notes := s.coord.Session().Notes
	sessionID := s.coord.Session().ID
	run := func() tea.Msg {
		ctx := llm.WithSessionID(context.Background(), sessionID)
		m, err := gen.Generate(ctx, notes)
		return router.GeneratedMsg{Ticket: ticket, Materials: m, Err: err}
	}
	return tea.Batch(run, s.spinner.Tick)
}

func (s *NoteInputScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	editorHeight := height - 12
	if layout.IsCompactHeight(height) {
		editorHeight = height - 9
	}
	if editorHeight < 3 {
		editorHeight = 3
	}
	s.editor.SetWidth(cw)
	s.editor.SetHeight(editorHeight)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Paste your notes") + "\n")
	b.WriteString(theme.Subtitle.Render("Turn lecture notes into a quiz and flashcards") + "\n\n")

	editor := s.editor.View()
	if s.coord.Loading() {
		editor = theme.Inactive.Render(editor)
	}
	b.WriteString(editor + "\n\n")

	b.WriteString(s.statusLine(cw) + "\n")

	if msg := s.coord.UserError(); msg != "" {
		b.WriteString("\n" + theme.ErrorBanner.Width(cw).Render(msg+"\n"+theme.Hint.Render("esc to dismiss")))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

// statusLine renders the character counter and the generate button.
func (s *NoteInputScreen) statusLine(cw int) string {
	notes := s.editor.Value()
	counter := "Ready for input"
	if n := utf8.RuneCountInString(notes); n > 0 {
		counter = fmt.Sprintf("%d characters", n)
	}

	var button string
	if s.coord.Loading() {
		button = theme.ButtonActive.Render(s.spinner.View() + " Generating...")
	} else {
		active := strings.TrimSpace(notes) != ""
		button = components.NewButton("Generate Study Materials", "ctrl+s", active).View()
	}

	left := theme.Hint.Render(counter)
	gap := cw - lipgloss.Width(left) - lipgloss.Width(button)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + button
}
