package studygen

import "github.com/abhisek/studybuddy/internal/llm"

// SchemaName identifies the study materials schema.
const SchemaName = "study-materials"

// MaterialsSchema returns the JSON schema a cleaned completion must match.
// maxItems caps the length of both lists.
func MaterialsSchema(maxItems int) *llm.Schema {
	return &llm.Schema{
		Name:        SchemaName,
		Description: "Multiple-choice questions and flashcards generated from lecture notes",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"maxItems": maxItems,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{
								"type":        "string",
								"description": "The question text",
							},
							"options": map[string]any{
								"type":        "array",
								"items":       map[string]any{"type": "string"},
								"minItems":    4,
								"maxItems":    4,
								"description": "Exactly 4 answer options",
							},
							"correct": map[string]any{
								"type":        "integer",
								"minimum":     0,
								"maximum":     3,
								"description": "Index of the correct option",
							},
						},
						"required":             []any{"question", "options", "correct"},
						"additionalProperties": false,
					},
				},
				"flashcards": map[string]any{
					"type":     "array",
					"maxItems": maxItems,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"front": map[string]any{
								"type":        "string",
								"description": "Concept or term",
							},
							"back": map[string]any{
								"type":        "string",
								"description": "Definition or explanation",
							},
						},
						"required":             []any{"front", "back"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions", "flashcards"},
			"additionalProperties": false,
		},
	}
}
