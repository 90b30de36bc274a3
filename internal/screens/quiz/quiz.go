// Package quiz implements the multiple-choice quiz screen.
package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// retakeMsg restarts the quiz from the results view.
type retakeMsg struct{}

// QuizScreen drives a quiz.Engine over the session's questions.
type QuizScreen struct {
	engine  *qz.Engine
	choices components.Choices
	results components.Menu
}

var _ screen.Screen = (*QuizScreen)(nil)

// New creates a QuizScreen over the coordinator's questions.
func New(coord *session.Coordinator) *QuizScreen {
	var e *qz.Engine
	if m := coord.Materials(); m != nil {
		e = qz.New(m.Questions)
	} else {
		e = qz.New(nil)
	}
	s := &QuizScreen{engine: e}
	s.resetChoices()
	return s
}

// Engine exposes the underlying quiz state.
func (s *QuizScreen) Engine() *qz.Engine {
	return s.engine
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.engine.State() {
	case qz.Answering:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Choose"},
			{Key: "Esc", Description: "Quit Quiz"},
		}
	case qz.Answered:
		label := "Next Question"
		if s.engine.LastQuestion() {
			label = "See Results"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "Esc", Description: "Quit Quiz"},
		}
	case qz.Completed:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Go Back"}}
}

func (s *QuizScreen) resetChoices() {
	q, ok := s.engine.Current()
	if !ok {
		s.choices = components.Choices{}
		return
	}
	s.choices = components.NewChoices(q.Options[:], q.Correct)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case retakeMsg:
		s.engine.Restart()
		s.resetChoices()
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, router.Navigate(session.ModeMenu)
		}
		switch s.engine.State() {
		case qz.Answering:
			return s.handleAnswering(msg)
		case qz.Answered:
			return s.handleAnswered(msg)
		case qz.Completed:
			var cmd tea.Cmd
			s.results, cmd = s.results.Update(msg)
			return s, cmd
		}
	}
	return s, nil
}

func (s *QuizScreen) handleAnswering(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch key := msg.String(); key {
	case "1", "2", "3", "4":
		s.answer(int(key[0] - '1'))
	case "a", "b", "c", "d":
		s.answer(int(key[0] - 'a'))
	case "up", "k":
		s.choices.Up()
	case "down", "j":
		s.choices.Down()
	case "enter":
		s.answer(s.choices.Cursor)
	}
	return s, nil
}

func (s *QuizScreen) answer(option int) {
	s.engine.Select(option)
	if s.engine.State() == qz.Answered {
		s.choices.Reveal(s.engine.Selected())
	}
}

func (s *QuizScreen) handleAnswered(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "right", "n", "space":
		s.engine.Advance()
		if s.engine.State() == qz.Completed {
			s.results = components.NewMenu([]components.MenuItem{
				{Label: "Retake Quiz", Action: func() tea.Cmd {
					return func() tea.Msg { return retakeMsg{} }
				}},
				{Label: "Back to Menu", Action: func() tea.Cmd {
					return router.Navigate(session.ModeMenu)
				}},
			})
			return s, nil
		}
		s.resetChoices()
	}
	return s, nil
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var content string
	switch s.engine.State() {
	case qz.Unavailable:
		content = theme.Hint.Render("No questions available. Please regenerate.") + "\n\n" +
			theme.Hint.Render("esc to go back")
	case qz.Completed:
		content = s.renderResults(cw)
	default:
		content = s.renderQuestion(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *QuizScreen) renderQuestion(cw int) string {
	q, _ := s.engine.Current()

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.engine.Index()+1, s.engine.Total())) + "\n")
	b.WriteString(components.NewProgress(s.engine.Index(), s.engine.Total(), cw).View() + "\n\n")

	body := theme.Body.Bold(true).Width(cw-6).Render(q.Text) + "\n\n" + s.choices.View()
	b.WriteString(components.Card(body, cw, components.CardBorder(true)) + "\n")

	if s.engine.State() == qz.Answered {
		if q.IsCorrect(s.engine.Selected()) {
			b.WriteString(theme.Correct.Render("Correct!") + "\n\n")
		} else {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is %c.", 'A'+q.Correct)) + "\n\n")
		}
		label := "Next Question"
		if s.engine.LastQuestion() {
			label = "See Results"
		}
		b.WriteString(components.NewButton(label, "enter", true).View())
	}
	return b.String()
}

func (s *QuizScreen) renderResults(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz Completed!") + "\n")
	b.WriteString(theme.Subtitle.Render("Here's how you performed") + "\n\n")

	pct := s.engine.Percentage()
	style := theme.Correct
	if pct < 50 {
		style = theme.Incorrect
	}
	b.WriteString(style.Render(fmt.Sprintf("%d%%", pct)) + "\n")
	b.WriteString(components.NewProgress(pct, 100, cw/2).View() + "\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("You got %d out of %d questions correct", s.engine.Score(), s.engine.Total())) + "\n\n")
	b.WriteString(s.results.View())
	return b.String()
}
