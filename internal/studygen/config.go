package studygen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// QuestionCount is the number of questions requested in the prompt.
	QuestionCount int `mapstructure:"question_count" validate:"gt=0,ltefield=MaxItems"`

	// FlashcardCount is the number of flashcards requested in the prompt.
	FlashcardCount int `mapstructure:"flashcard_count" validate:"gt=0,ltefield=MaxItems"`

	// MaxItems caps both lists in an accepted response. Models sometimes
	// return more than asked; anything above the cap is rejected.
	MaxItems int `mapstructure:"max_items" validate:"gt=0"`

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int `mapstructure:"max_tokens" validate:"gt=0"`

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=1"`

	// NativeSchema also sends the JSON schema to the provider's structured
	// output mode. The response is validated locally either way.
	NativeSchema bool `mapstructure:"native_schema"`
}

// DefaultConfig returns a Config matching the classic request: five
// questions, eight flashcards, temperature 0.2, 2000 tokens.
func DefaultConfig() Config {
	return Config{
		QuestionCount:  5,
		FlashcardCount: 8,
		MaxItems:       20,
		MaxTokens:      2000,
		Temperature:    0.2,
	}
}
