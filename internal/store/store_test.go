package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenAppliesMigrations(t *testing.T) {
	s := openTestStore(t)

	version, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	var count int
	err = s.DB().QueryRow(`SELECT COUNT(*) FROM llm_request_events`).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL falls back to "memory" for in-memory databases; covered
		// by TestOpenFileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "studybuddy.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
	require.NoError(t, s.Close())

	// Reopening an already migrated database is a no-op.
	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "study-materials", SessionID: "a", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true},
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "study-materials", SessionID: "b", InputTokens: 50, OutputTokens: 0, LatencyMs: 100, Success: false, ErrorMessage: "LLM provider unavailable (HTTP 401): bad key"},
		{Provider: "mock", Model: "mock", Purpose: "api", SessionID: "b", InputTokens: 1, OutputTokens: 2, LatencyMs: 5, Success: true, RequestBody: "[user]\nnotes", ResponseBody: "{}"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "mock", all[0].Provider, "newest first")
	assert.True(t, base.Add(3*time.Second).Equal(all[0].Timestamp), "timestamp %s", all[0].Timestamp)
	assert.Equal(t, "[user]\nnotes", all[0].RequestBody)
	assert.False(t, all[1].Success)
	assert.Equal(t, "LLM provider unavailable (HTTP 401): bad key", all[1].ErrorMessage)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)

	byPurpose, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "study-materials"})
	require.NoError(t, err)
	assert.Len(t, byPurpose, 2)

	bySession, err := repo.QueryLLMEvents(ctx, QueryOpts{SessionID: "b", Purpose: "api"})
	require.NoError(t, err)
	require.Len(t, bySession, 1)
	assert.Equal(t, "mock", bySession[0].Model)
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "groq", Model: "m", Success: true}))

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 1)

	e, err := repo.GetLLMEvent(ctx, all[0].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "groq", e.Provider)
	assert.True(t, e.Success)

	missing, err := repo.GetLLMEvent(ctx, all[0].ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "study-materials", InputTokens: 100, OutputTokens: 200, LatencyMs: 100},
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "study-materials", InputTokens: 300, OutputTokens: 400, LatencyMs: 300},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "api", InputTokens: 10, OutputTokens: 20, LatencyMs: 50},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	purposes, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	assert.Equal(t, []PurposeUsage{
		{Purpose: "api", Calls: 1, InputTokens: 10, OutputTokens: 20, AvgLatencyMs: 50},
		{Purpose: "study-materials", Calls: 2, InputTokens: 400, OutputTokens: 600, AvgLatencyMs: 200},
	}, purposes)

	models, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ModelUsage{
		{Model: "gpt-4o-mini", Calls: 1, InputTokens: 10, OutputTokens: 20},
		{Model: "llama-3.3-70b-versatile", Calls: 2, InputTokens: 400, OutputTokens: 600},
	}, models)
}

func TestLLMUsageEmpty(t *testing.T) {
	s := openTestStore(t)

	purposes, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	require.NoError(t, err)
	assert.Empty(t, purposes)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("STUDYBUDDY_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "studybuddy", "studybuddy.db"), p)
	assert.DirExists(t, filepath.Join(dir, "studybuddy"))

	override := filepath.Join(dir, "custom", "x.db")
	t.Setenv("STUDYBUDDY_DB", override)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, override, p)
}
