package studygen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/studybuddy/internal/llm"
)

// Purpose tags generation requests in the LLM event log.
const Purpose = "study-materials"

// Generator turns lecture notes into study materials.
type Generator interface {
	// Generate returns validated Materials for notes. Empty notes fail
	// with ErrEmptyNotes; every other failure is a *GenerationError.
	Generate(ctx context.Context, notes string) (*Materials, error)
}

// LLMGenerator implements Generator using an LLM provider.
// It is safe for concurrent use.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	schema   *llm.Schema
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{
		provider: provider,
		config:   cfg,
		schema:   MaterialsSchema(cfg.MaxItems),
	}
}

// materialsOutput is the raw LLM response before validation.
type materialsOutput struct {
	Questions  []questionOutput  `json:"questions" validate:"dive"`
	Flashcards []flashcardOutput `json:"flashcards" validate:"dive"`
}

type questionOutput struct {
	Question string   `json:"question" validate:"notblank"`
	Options  []string `json:"options" validate:"len=4,dive,notblank"`
	Correct  int      `json:"correct" validate:"min=0,max=3"`
}

type flashcardOutput struct {
	Front string `json:"front" validate:"notblank"`
	Back  string `json:"back" validate:"notblank"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Generate produces study materials for the given notes.
func (g *LLMGenerator) Generate(ctx context.Context, notes string) (*Materials, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrEmptyNotes
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(notes, g.config)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
	if g.config.NativeSchema {
		req.Schema = g.schema
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Stage: StageRequest, Err: err}
	}

	// A truncated reply is never complete JSON worth repairing.
	if resp.StopReason == llm.StopMaxTokens {
		return nil, &GenerationError{
			Stage: StageTruncate,
			Err:   &llm.ErrMaxTokensExceeded{Content: resp.Content},
		}
	}

	return g.parse(resp.Text())
}

// parse strips code fences from a completion and builds typed Materials.
func (g *LLMGenerator) parse(completion string) (*Materials, error) {
	cleaned := json.RawMessage(llm.StripCodeFence(completion))

	if err := llm.ValidateJSON(g.schema, cleaned); err != nil {
		return nil, &GenerationError{Stage: StageSchema, Err: err}
	}

	var raw materialsOutput
	if err := json.Unmarshal(cleaned, &raw); err != nil {
		return nil, &GenerationError{Stage: StageParse, Err: fmt.Errorf("decode materials: %w", err)}
	}

	if err := fieldValidator().Struct(raw); err != nil {
		return nil, &GenerationError{Stage: StageFields, Err: err}
	}

	return raw.materials(), nil
}

func (o materialsOutput) materials() *Materials {
	m := &Materials{
		Questions:  make([]Question, len(o.Questions)),
		Flashcards: make([]Flashcard, len(o.Flashcards)),
	}
	for i, q := range o.Questions {
		m.Questions[i] = Question{Text: q.Question, Correct: q.Correct}
		copy(m.Questions[i].Options[:], q.Options)
	}
	for i, f := range o.Flashcards {
		m.Flashcards[i] = Flashcard{Front: f.Front, Back: f.Back}
	}
	return m
}

// Parse validates a completion produced elsewhere (for example a saved
// response) with the same rules Generate applies.
func Parse(completion string, cfg Config) (*Materials, error) {
	return New(nil, cfg).parse(completion)
}
