// Package quiz tracks progress through a multiple-choice quiz: the current
// question, the learner's selection, and the running score.
package quiz

import (
	"math"

	"github.com/abhisek/studybuddy/internal/studygen"
)

// State is the quiz lifecycle state.
type State int

const (
	// Unavailable means there are no questions; every action is a no-op.
	Unavailable State = iota
	// Answering waits for a selection on the current question.
	Answering
	// Answered shows the correctness of the selection.
	Answered
	// Completed shows the final result.
	Completed
)

func (s State) String() string {
	switch s {
	case Unavailable:
		return "unavailable"
	case Answering:
		return "answering"
	case Answered:
		return "answered"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// NoSelection is the Selected value before an option is chosen.
const NoSelection = -1

// Engine holds quiz progress over an immutable question list.
// Not safe for concurrent use; it lives on the UI update loop.
type Engine struct {
	questions []studygen.Question
	state     State
	index     int
	selected  int
	score     int
}

// New creates an Engine positioned on the first question.
func New(questions []studygen.Question) *Engine {
	e := &Engine{questions: questions, selected: NoSelection}
	if len(questions) > 0 {
		e.state = Answering
	}
	return e
}

// Select records the answer to the current question. It only has an
// effect while Answering and for an index in the option range; the
// score increases when the choice is correct.
func (e *Engine) Select(option int) {
	if e.state != Answering {
		return
	}
	if option < 0 || option >= len(e.questions[e.index].Options) {
		return
	}
	e.selected = option
	if e.questions[e.index].IsCorrect(option) {
		e.score++
	}
	e.state = Answered
}

// Advance moves past an answered question: to the next one, or to
// Completed after the last.
func (e *Engine) Advance() {
	if e.state != Answered {
		return
	}
	if e.index == len(e.questions)-1 {
		e.state = Completed
		return
	}
	e.index++
	e.selected = NoSelection
	e.state = Answering
}

// Restart resets to the first question with a zero score.
func (e *Engine) Restart() {
	if e.state == Unavailable {
		return
	}
	e.index = 0
	e.selected = NoSelection
	e.score = 0
	e.state = Answering
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Index returns the zero-based position of the current question.
func (e *Engine) Index() int { return e.index }

// Total returns the number of questions.
func (e *Engine) Total() int { return len(e.questions) }

// Score returns the number of correct selections so far.
func (e *Engine) Score() int { return e.score }

// Selected returns the chosen option, or NoSelection.
func (e *Engine) Selected() int { return e.selected }

// Current returns the question at the current position. ok is false when
// the quiz is Unavailable.
func (e *Engine) Current() (q studygen.Question, ok bool) {
	if e.state == Unavailable {
		return studygen.Question{}, false
	}
	return e.questions[e.index], true
}

// LastQuestion reports whether the current question is the final one.
func (e *Engine) LastQuestion() bool {
	return e.state != Unavailable && e.index == len(e.questions)-1
}

// Percentage returns round(score/total*100), rounding halves away from
// zero. It is 0 when there are no questions.
func (e *Engine) Percentage() int {
	if len(e.questions) == 0 {
		return 0
	}
	return int(math.Round(float64(e.score) / float64(len(e.questions)) * 100))
}
