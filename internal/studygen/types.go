package studygen

// Question is one generated multiple-choice question.
type Question struct {
	// Text is the question prompt.
	Text string `json:"question"`

	// Options holds exactly four answer choices, displayed in order.
	Options [4]string `json:"options"`

	// Correct is the index of the right option, in [0, 3].
	Correct int `json:"correct"`
}

// IsCorrect reports whether choosing option i answers the question.
func (q Question) IsCorrect(i int) bool {
	return i == q.Correct
}

// Flashcard is one generated term/definition pair.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Materials is the result of one generation: the unit a session installs
// atomically. The JSON form matches the shape requested from the model.
type Materials struct {
	Questions  []Question  `json:"questions"`
	Flashcards []Flashcard `json:"flashcards"`
}

// Empty reports whether neither list has any entries.
func (m *Materials) Empty() bool {
	return m == nil || len(m.Questions) == 0 && len(m.Flashcards) == 0
}
