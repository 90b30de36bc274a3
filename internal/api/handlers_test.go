package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/auth"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/studygen"
)

const materialsJSON = `{
  "questions": [
    {"question": "What is 2+2?", "options": ["3", "4", "5", "6"], "correct": 1}
  ],
  "flashcards": [
    {"front": "Mitochondria", "back": "Powerhouse of the cell"}
  ]
}`

type stubGenerator struct {
	materials *studygen.Materials
	err       error
	notes     []string
	sessionID string
}

func (s *stubGenerator) Generate(ctx context.Context, notes string) (*studygen.Materials, error) {
	s.notes = append(s.notes, notes)
	s.sessionID = llm.SessionIDFrom(ctx)
	return s.materials, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, gen studygen.Generator, opts RouterOptions) *httptest.Server {
	t.Helper()
	opts.Logger = quietLogger()
	h := NewHandler(gen, auth.New(auth.DefaultConfig()), quietLogger())
	srv := httptest.NewServer(NewRouter(h, opts))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestGenerateMaterials_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(materialsJSON)})
	gen := studygen.New(mock, studygen.DefaultConfig())
	srv := newTestServer(t, gen, RouterOptions{})

	resp := post(t, srv.URL+"/api/v1/study-materials", `{"notes": "Cells have mitochondria."}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got studygen.Materials
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "What is 2+2?", got.Questions[0].Text)
	assert.Equal(t, 1, got.Questions[0].Correct)
	require.Len(t, got.Flashcards, 1)
	assert.Equal(t, "Mitochondria", got.Flashcards[0].Front)

	require.Equal(t, 1, mock.CallCount())
	last, ok := mock.LastCall()
	require.True(t, ok)
	assert.Contains(t, last.Messages[0].Content, "Cells have mitochondria.")
}

func TestGenerateMaterials_TrimsNotesAndTagsSession(t *testing.T) {
	stub := &stubGenerator{materials: &studygen.Materials{}}
	srv := newTestServer(t, stub, RouterOptions{})

	resp := post(t, srv.URL+"/api/v1/study-materials", `{"notes": "  photosynthesis \n"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"photosynthesis"}, stub.notes)
	assert.True(t, strings.HasPrefix(stub.sessionID, "http:"), "session id %q", stub.sessionID)
}

func TestGenerateMaterials_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"malformed json", `{"notes": `},
		{"missing notes", `{}`},
		{"blank notes", `{"notes": "   \n\t"}`},
		{"trailing data", `{"notes": "a"} {"notes": "b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubGenerator{materials: &studygen.Materials{}}
			srv := newTestServer(t, stub, RouterOptions{})

			resp := post(t, srv.URL+"/api/v1/study-materials", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
			assert.NotEmpty(t, body.RequestID)
			assert.Empty(t, stub.notes, "generator must not be called")
		})
	}
}

func TestGenerateMaterials_GenerationFailure(t *testing.T) {
	stub := &stubGenerator{err: &studygen.GenerationError{
		Stage: studygen.StageRequest,
		Err:   errors.New("connection refused: secret-internal-detail"),
	}}
	srv := newTestServer(t, stub, RouterOptions{})

	resp := post(t, srv.URL+"/api/v1/study-materials", `{"notes": "x"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, studygen.UserMessage, body.Error)
	assert.NotContains(t, body.Error, "secret-internal-detail")
}

func TestGenerateMaterials_MalformedModelOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions": "nope"}`)})
	srv := newTestServer(t, studygen.New(mock, studygen.DefaultConfig()), RouterOptions{})

	resp := post(t, srv.URL+"/api/v1/study-materials", `{"notes": "x"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantOK     bool
	}{
		{"valid", `{"username": "Aditi", "password": "Snowy"}`, http.StatusOK, true},
		{"wrong case", `{"username": "aditi", "password": "Snowy"}`, http.StatusUnauthorized, false},
		{"wrong password", `{"username": "Aditi", "password": "snowy"}`, http.StatusUnauthorized, false},
		{"empty", `{"username": "", "password": ""}`, http.StatusUnauthorized, false},
		{"malformed", `{"username":`, http.StatusBadRequest, false},
	}

	srv := newTestServer(t, &stubGenerator{}, RouterOptions{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/api/v1/login", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body LoginResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantOK, body.OK)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, auth.InvalidCredentialsMessage, body.Error)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{}, RouterOptions{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_MethodAndPath(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{}, RouterOptions{})

	resp, err := http.Get(srv.URL + "/api/v1/study-materials")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp2, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestRouter_CORS(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{}, RouterOptions{
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/login", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), quietLogger())
	}()
	cancel()
	assert.NoError(t, <-done)
}
