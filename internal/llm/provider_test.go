package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`), StopReason: StopMaxTokens},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text() != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != StopEnd {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.StopReason != StopMaxTokens {
		t.Fatalf("expected stop reason 'max_tokens', got %q", resp2.StopReason)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	_, _ = mock.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	last, ok := mock.LastCall()
	if !ok || last.System != "sys" {
		t.Fatalf("expected system 'sys', got %q", last.System)
	}
}

func TestMockProvider_BlockHonorsContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	mock.Block = make(chan struct{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestMockProvider_Identity(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" || mock.Name() != "mock" {
		t.Fatalf("expected mock/mock, got %q/%q", mock.Name(), mock.ModelID())
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if id := SessionIDFrom(ctx); id != "" {
		t.Fatalf("expected empty session id, got %q", id)
	}

	ctx = WithSessionID(WithPurpose(ctx, "study-materials"), "abc")
	if p := PurposeFrom(ctx); p != "study-materials" {
		t.Fatalf("expected 'study-materials', got %q", p)
	}
	if id := SessionIDFrom(ctx); id != "abc" {
		t.Fatalf("expected 'abc', got %q", id)
	}
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err  error
		want string
	}{
		{&ErrProviderUnavailable{}, "LLM provider unavailable"},
		{&ErrProviderUnavailable{Err: cause}, "LLM provider unavailable: boom"},
		{&ErrProviderUnavailable{StatusCode: 503, Err: cause}, "LLM provider unavailable (HTTP 503): boom"},
		{&ErrInvalidResponse{Err: cause}, "invalid LLM response: boom"},
		{&ErrMaxTokensExceeded{}, "LLM response truncated: max tokens exceeded"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if !errors.Is(&ErrRateLimit{Err: cause}, cause) {
		t.Error("ErrRateLimit should unwrap to its cause")
	}
}
