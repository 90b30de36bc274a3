// Package session owns the state of one study session and the single
// mode value that decides which screen is shown.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/studygen"
)

var (
	// ErrBusy is returned when a generation is already in flight.
	ErrBusy = errors.New("generation already in progress")

	// ErrNoMaterials is returned when entering the menu before anything
	// was generated.
	ErrNoMaterials = errors.New("no study materials generated")

	// ErrNoQuestions is returned when entering a quiz with no questions.
	ErrNoQuestions = errors.New("no quiz questions available")

	// ErrNoFlashcards is returned when entering review with no flashcards.
	ErrNoFlashcards = errors.New("no flashcards available")

	// ErrInvalidTransition is returned for mode changes the flow does not allow.
	ErrInvalidTransition = errors.New("invalid mode transition")
)

// Session is a snapshot of the current study session.
type Session struct {
	// ID identifies the session in the LLM event log. A new ID is issued
	// whenever the user starts over with new notes.
	ID string

	Notes     string
	Materials *studygen.Materials

	// Loading is true while a generation is in flight.
	Loading bool

	// Err is the last generation failure, nil after success or dismissal.
	Err error
}

// Ticket identifies one generation request. Tickets are never reused.
// A result whose ticket is not the one in flight (already resolved,
// replayed, or issued before a reset) is discarded.
type Ticket uint64

// Coordinator is the only writer of session state. All methods run on
// the UI update loop; it is not safe for concurrent use.
type Coordinator struct {
	mode     Mode
	session  Session
	issued   Ticket
	inFlight Ticket
	newID    func() string
}

// NewCoordinator returns a Coordinator in input mode with an empty session.
func NewCoordinator() *Coordinator {
	c := &Coordinator{newID: func() string { return uuid.NewString() }}
	c.session.ID = c.newID()
	return c
}

// Mode returns the current mode.
func (c *Coordinator) Mode() Mode { return c.mode }

// Session returns a copy of the session state.
func (c *Coordinator) Session() Session { return c.session }

// Materials returns the installed materials, or nil.
func (c *Coordinator) Materials() *studygen.Materials { return c.session.Materials }

// Loading reports whether a generation is in flight.
func (c *Coordinator) Loading() bool { return c.session.Loading }

// Err returns the last generation failure.
func (c *Coordinator) Err() error { return c.session.Err }

// UserError returns the message to show for Err, or "".
func (c *Coordinator) UserError() string { return studygen.UserFacing(c.session.Err) }

// SetNotes replaces the note text. Notes are frozen while loading.
func (c *Coordinator) SetNotes(notes string) error {
	if c.session.Loading {
		return ErrBusy
	}
	c.session.Notes = notes
	return nil
}

// DismissError clears the last generation failure.
func (c *Coordinator) DismissError() {
	c.session.Err = nil
}

// SelectMode moves to mode m, enforcing the allowed transitions.
// Selecting the current mode is a no-op.
func (c *Coordinator) SelectMode(m Mode) error {
	if m == c.mode {
		return nil
	}

	switch m {
	case ModeInput:
		c.reset()
	case ModeMenu:
		if c.session.Materials == nil {
			return ErrNoMaterials
		}
		if c.session.Loading {
			return ErrBusy
		}
	case ModeQuiz:
		if c.mode != ModeMenu {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, c.mode, m)
		}
		if c.session.Materials == nil || len(c.session.Materials.Questions) == 0 {
			return ErrNoQuestions
		}
	case ModeFlashcards:
		if c.mode != ModeMenu {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, c.mode, m)
		}
		if c.session.Materials == nil || len(c.session.Materials.Flashcards) == 0 {
			return ErrNoFlashcards
		}
	default:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidTransition, m)
	}

	c.mode = m
	return nil
}

// reset starts a new session: fresh ID, no notes, no materials, no error.
// The ticket counter is kept so earlier tickets stay stale.
func (c *Coordinator) reset() {
	c.session = Session{ID: c.newID()}
	c.inFlight = 0
}

// BeginGenerate marks a generation as in flight and returns its ticket.
// It refuses while another generation runs, outside input mode, and for
// empty notes.
func (c *Coordinator) BeginGenerate() (Ticket, error) {
	if c.session.Loading {
		return 0, ErrBusy
	}
	if c.mode != ModeInput {
		return 0, fmt.Errorf("%w: generate from %s", ErrInvalidTransition, c.mode)
	}
	if strings.TrimSpace(c.session.Notes) == "" {
		return 0, studygen.ErrEmptyNotes
	}

	c.issued++
	c.inFlight = c.issued
	c.session.Loading = true
	c.session.Err = nil
	return c.inFlight, nil
}

// Complete installs materials for ticket t and moves to the menu.
// It returns false and changes nothing when t is stale.
func (c *Coordinator) Complete(t Ticket, m *studygen.Materials) bool {
	if !c.accept(t) {
		return false
	}
	if m == nil {
		c.session.Err = &studygen.GenerationError{Stage: studygen.StageParse, Err: errors.New("no materials returned")}
		return true
	}
	c.session.Materials = m
	c.mode = ModeMenu
	return true
}

// Fail records err for ticket t. Previously generated materials stay.
// It returns false and changes nothing when t is stale.
func (c *Coordinator) Fail(t Ticket, err error) bool {
	if !c.accept(t) {
		return false
	}
	c.session.Err = err
	return true
}

// Resolve routes a generation result to Complete or Fail.
func (c *Coordinator) Resolve(t Ticket, m *studygen.Materials, err error) bool {
	if err != nil {
		return c.Fail(t, err)
	}
	return c.Complete(t, m)
}

func (c *Coordinator) accept(t Ticket) bool {
	if t == 0 || t != c.inFlight {
		return false
	}
	c.inFlight = 0
	c.session.Loading = false
	return true
}
