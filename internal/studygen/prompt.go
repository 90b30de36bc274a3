package studygen

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a helpful AI assistant that generates study materials from lecture notes. " +
	"Output ONLY valid JSON with no markdown formatting or explanations."

const responseShape = `{
  "questions": [
    {
      "question": "Question text here",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct": 0
    }
  ],
  "flashcards": [
    {
      "front": "Concept or term",
      "back": "Definition or explanation"
    }
  ]
}`

// buildUserMessage embeds the notes in the generation instructions.
func buildUserMessage(notes string, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Based on the following lecture notes, generate %d multiple-choice %s "+
		"(with 4 options and the index of the correct answer) and %d %s (front/back).\n\n",
		cfg.QuestionCount, plural(cfg.QuestionCount, "question", "questions"),
		cfg.FlashcardCount, plural(cfg.FlashcardCount, "flashcard", "flashcards"))

	b.WriteString("Return the response in this exact JSON format:\n")
	b.WriteString(responseShape)
	b.WriteString("\n\nLecture Notes:\n")
	b.WriteString(notes)

	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
