package noteinput

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// mockGenerator implements studygen.Generator for testing.
type mockGenerator struct {
	materials *studygen.Materials
	err       error
	calls     int
	notes     string
	sessionID string
}

func (m *mockGenerator) Generate(ctx context.Context, notes string) (*studygen.Materials, error) {
	m.calls++
	m.notes = notes
	m.sessionID = llm.SessionIDFrom(ctx)
	return m.materials, m.err
}

func newTestScreen(gen *mockGenerator) (*NoteInputScreen, *session.Coordinator) {
	coord := session.NewCoordinator()
	s := New(coord, gen)
	s.Init()
	return s, coord
}

func typeText(s *NoteInputScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func ctrlS() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
}

// findGenerated runs cmd (and any batch inside) and returns the first GeneratedMsg.
func findGenerated(t *testing.T, cmd tea.Cmd) router.GeneratedMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case router.GeneratedMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if g, ok := c().(router.GeneratedMsg); ok {
				return g
			}
		}
	}
	t.Fatal("no GeneratedMsg produced")
	return router.GeneratedMsg{}
}

func TestTypingUpdatesNotesAndCounter(t *testing.T) {
	s, coord := newTestScreen(&mockGenerator{})

	if !strings.Contains(s.View(100, 40), "Ready for input") {
		t.Error("empty editor should show Ready for input")
	}

	typeText(s, "Cells")
	if coord.Session().Notes != "Cells" {
		t.Errorf("expected notes Cells, got %q", coord.Session().Notes)
	}
	if !strings.Contains(s.View(100, 40), "5 characters") {
		t.Error("expected character counter")
	}
}

func TestGenerateStartsRequest(t *testing.T) {
	gen := &mockGenerator{materials: &studygen.Materials{
		Questions: []studygen.Question{{Text: "q", Options: [4]string{"a", "b", "c", "d"}}},
	}}
	s, coord := newTestScreen(gen)
	typeText(s, "Mitochondria make ATP")

	_, cmd := s.Update(ctrlS())
	if !coord.Loading() {
		t.Fatal("expected loading after ctrl+s")
	}
	if !strings.Contains(s.View(100, 40), "Generating...") {
		t.Error("expected Generating... while loading")
	}

	msg := findGenerated(t, cmd)
	if gen.calls != 1 {
		t.Fatalf("expected 1 generate call, got %d", gen.calls)
	}
	if gen.notes != "Mitochondria make ATP" {
		t.Errorf("unexpected notes %q", gen.notes)
	}
	if gen.sessionID != coord.Session().ID {
		t.Errorf("request should carry the session id, got %q", gen.sessionID)
	}
	if msg.Materials == nil || msg.Err != nil {
		t.Errorf("unexpected result %+v", msg)
	}
	if !coord.Complete(msg.Ticket, msg.Materials) {
		t.Error("ticket from the command should be current")
	}
}

func TestGenerateIgnoredForEmptyNotes(t *testing.T) {
	gen := &mockGenerator{}
	s, coord := newTestScreen(gen)
	typeText(s, "   ")

	_, cmd := s.Update(ctrlS())
	if cmd != nil {
		t.Error("empty notes should not start a request")
	}
	if coord.Loading() {
		t.Error("empty notes should not set loading")
	}
}

func TestInputFrozenWhileLoading(t *testing.T) {
	gen := &mockGenerator{materials: &studygen.Materials{}}
	s, coord := newTestScreen(gen)
	typeText(s, "notes")
	s.Update(ctrlS())

	typeText(s, "more")
	if coord.Session().Notes != "notes" {
		t.Errorf("notes should be frozen while loading, got %q", coord.Session().Notes)
	}
	if _, cmd := s.Update(ctrlS()); cmd != nil {
		t.Error("second ctrl+s should be ignored while loading")
	}
}

func TestErrorBannerAndDismiss(t *testing.T) {
	gen := &mockGenerator{err: &studygen.GenerationError{Stage: studygen.StageRequest, Err: errors.New("401")}}
	s, coord := newTestScreen(gen)
	typeText(s, "notes")

	_, cmd := s.Update(ctrlS())
	msg := findGenerated(t, cmd)
	coord.Resolve(msg.Ticket, msg.Materials, msg.Err)

	view := flatten(s.View(100, 40))
	if !strings.Contains(view, studygen.UserMessage) {
		t.Errorf("expected generic error message in view:\n%s", view)
	}
	if strings.Contains(view, "401") {
		t.Error("raw cause should not be shown")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if coord.Err() != nil {
		t.Error("esc should dismiss the error")
	}
	if strings.Contains(flatten(s.View(100, 40)), "esc to dismiss") {
		t.Error("banner should be gone after dismiss")
	}
	if coord.Session().Notes != "notes" {
		t.Error("notes should survive a failure")
	}
}

func TestErrorBannerWrapsAtNarrowWidth(t *testing.T) {
	gen := &mockGenerator{err: &studygen.GenerationError{Stage: studygen.StageParse, Err: errors.New("bad json")}}
	s, coord := newTestScreen(gen)
	typeText(s, "notes")

	_, cmd := s.Update(ctrlS())
	msg := findGenerated(t, cmd)
	coord.Resolve(msg.Ticket, msg.Materials, msg.Err)

	raw := ansi.Strip(s.View(50, 40))
	if strings.Contains(raw, studygen.UserMessage) {
		t.Fatalf("expected the banner to wrap at width 50:\n%s", raw)
	}
	if !strings.Contains(flatten(s.View(50, 40)), studygen.UserMessage) {
		t.Errorf("wrapped banner should still carry the full message:\n%s", raw)
	}
}

// flatten strips styling and box borders and collapses whitespace so
// wrapped text can be matched as a single sentence.
func flatten(view string) string {
	view = ansi.Strip(view)
	view = strings.Map(func(r rune) rune {
		switch r {
		case '│', '─', '╭', '╮', '╰', '╯':
			return ' '
		}
		return r
	}, view)
	return strings.Join(strings.Fields(view), " ")
}

func TestNewLoadsExistingNotes(t *testing.T) {
	coord := session.NewCoordinator()
	coord.SetNotes("kept")
	s := New(coord, &mockGenerator{})
	if s.editor.Value() != "kept" {
		t.Errorf("expected editor to load notes, got %q", s.editor.Value())
	}
}

func TestPasteUpdatesNotes(t *testing.T) {
	s, coord := newTestScreen(&mockGenerator{})
	s.Update(tea.PasteMsg{Content: "pasted\nnotes"})
	if coord.Session().Notes != "pasted\nnotes" {
		t.Errorf("unexpected notes %q", coord.Session().Notes)
	}
}
