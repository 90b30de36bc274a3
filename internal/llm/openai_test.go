package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGroqProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGroqProvider(GroqConfig{
		APIKey:  "gsk-test",
		Model:   "llama-3.3-70b-versatile",
		BaseURL: server.URL + "/openai/v1",
	})
	if err != nil {
		t.Fatalf("new groq provider: %v", err)
	}
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "llama-3.3-70b-versatile",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": finish,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func TestGroqProvider_HappyPath(t *testing.T) {
	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer gsk-test" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("```json\n{\"questions\":[]}\n```", "stop"))
	}

	p := newTestGroqProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:      "Output ONLY valid JSON.",
		Messages:    []Message{{Role: RoleUser, Content: "notes"}},
		MaxTokens:   2000,
		Temperature: 0.2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	// Without a schema the raw completion text is returned untouched.
	if resp.Text() != "```json\n{\"questions\":[]}\n```" {
		t.Fatalf("unexpected content %q", resp.Text())
	}

	if got["model"] != "llama-3.3-70b-versatile" {
		t.Errorf("model = %v", got["model"])
	}
	if got["max_tokens"] != float64(2000) {
		t.Errorf("max_tokens = %v, want 2000", got["max_tokens"])
	}
	if _, ok := got["max_completion_tokens"]; ok {
		t.Error("groq requests must not send max_completion_tokens")
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(msgs))
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("first message role = %v, want system", first["role"])
	}
}

func TestGroqProvider_Truncated(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"questions":[`, "length"))
	}

	p := newTestGroqProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != StopMaxTokens {
		t.Fatalf("expected stop reason 'max_tokens', got %q", resp.StopReason)
	}
}

func TestGroqProvider_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"rate limit", http.StatusTooManyRequests, func(t *testing.T, err error) {
			var rl *ErrRateLimit
			if !errors.As(err, &rl) {
				t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
			}
		}},
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			var unavail *ErrProviderUnavailable
			if !errors.As(err, &unavail) || unavail.StatusCode != http.StatusUnauthorized {
				t.Fatalf("expected ErrProviderUnavailable(401), got: %T (%v)", err, err)
			}
		}},
		{"server error", http.StatusInternalServerError, func(t *testing.T, err error) {
			var unavail *ErrProviderUnavailable
			if !errors.As(err, &unavail) || unavail.StatusCode != http.StatusInternalServerError {
				t.Fatalf("expected ErrProviderUnavailable(500), got: %T (%v)", err, err)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{
						"type":    "error",
						"message": http.StatusText(tt.status),
					},
				})
			}
			p := newTestGroqProvider(t, handler)
			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestGroqProvider_EmptyChoices(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "x", "model": "m", "choices": []any{}})
	}

	p := newTestGroqProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestGroqProvider_SchemaValidated(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if rf, _ := body["response_format"].(map[string]any); rf["type"] != "json_schema" {
			t.Errorf("response_format = %v", body["response_format"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"front":"only"}`, "stop"))
	}

	p := newTestGroqProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   testSchema(),
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestGroqProvider_FencedSchemaOutput(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("```json\n{\"front\":\"Term\",\"back\":\"Def\"}\n```", "stop"))
	}

	p := newTestGroqProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   testSchema(),
	})
	if err != nil {
		t.Fatalf("fenced JSON should validate: %v", err)
	}
	if string(resp.Content) != `{"front":"Term","back":"Def"}` {
		t.Fatalf("content = %s", resp.Content)
	}
}

func TestCompatibleProviders(t *testing.T) {
	groq, err := NewGroqProvider(GroqConfig{APIKey: "k", Model: "llama-70b"})
	if err != nil {
		t.Fatalf("groq: %v", err)
	}
	if groq.Name() != "groq" || groq.ModelID() != "llama-3.3-70b-versatile" {
		t.Errorf("groq = %s/%s", groq.Name(), groq.ModelID())
	}

	or, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "meta-llama/llama-3.3-70b-instruct"})
	if err != nil {
		t.Fatalf("openrouter: %v", err)
	}
	if or.Name() != "openrouter" || or.ModelID() != "meta-llama/llama-3.3-70b-instruct" {
		t.Errorf("openrouter = %s/%s", or.Name(), or.ModelID())
	}

	oa, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if oa.legacyMaxTokens {
		t.Error("openai should send max_completion_tokens")
	}

	for name, fn := range map[string]func() error{
		"groq":       func() error { _, err := NewGroqProvider(GroqConfig{}); return err },
		"openrouter": func() error { _, err := NewOpenRouterProvider(OpenRouterConfig{}); return err },
		"openai":     func() error { _, err := NewOpenAIProvider(OpenAIConfig{}); return err },
	} {
		if fn() == nil {
			t.Errorf("%s: expected error for empty API key", name)
		}
	}
}
