package session

// Mode is the screen the user is on.
type Mode int

const (
	// ModeInput collects lecture notes.
	ModeInput Mode = iota
	// ModeMenu offers the generated quiz and flashcards.
	ModeMenu
	// ModeQuiz runs the quiz engine.
	ModeQuiz
	// ModeFlashcards runs the flashcard deck.
	ModeFlashcards
)

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeMenu:
		return "menu"
	case ModeQuiz:
		return "quiz"
	case ModeFlashcards:
		return "flashcards"
	}
	return "unknown"
}
