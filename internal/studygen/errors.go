package studygen

import (
	"errors"
	"fmt"
)

// ErrEmptyNotes is returned when the note text is empty or whitespace.
// No request is made.
var ErrEmptyNotes = errors.New("notes are empty")

// UserMessage is the one sentence shown to users for any generation failure.
const UserMessage = "Failed to generate study materials. Please check your API key and try again."

// Generation stages, recorded on GenerationError for logs.
const (
	StageRequest  = "request"
	StageTruncate = "truncated"
	StageSchema   = "schema"
	StageParse    = "parse"
	StageFields   = "fields"
)

// GenerationError wraps any failure between sending the request and
// building typed records. Callers show UserMessage and log the cause.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate study materials (%s): %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UserMessage returns the generic human-readable failure sentence.
func (e *GenerationError) UserMessage() string {
	return UserMessage
}

// UserFacing maps any error to the text a user should see.
func UserFacing(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyNotes):
		return "Please enter some notes first."
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.UserMessage()
	}
	return UserMessage
}
