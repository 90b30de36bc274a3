package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/studybuddy/internal/auth"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var validate = validator.New()

// GenerateRequest is the body of POST /api/v1/study-materials.
type GenerateRequest struct {
	Notes string `json:"notes" validate:"required"`
}

// LoginRequest is the body of POST /api/v1/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Handler serves the API routes.
type Handler struct {
	generator studygen.Generator
	gate      *auth.Gate
	logger    *slog.Logger
}

// NewHandler creates a Handler. A nil logger uses slog.Default().
func NewHandler(gen studygen.Generator, gate *auth.Gate, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{generator: gen, gate: gate, logger: logger}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// GenerateMaterials handles POST /api/v1/study-materials.
func (h *Handler) GenerateMaterials(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(w, r, http.StatusBadRequest, "request body is empty")
			return
		}
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Notes = strings.TrimSpace(req.Notes)
	if err := validate.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, studygen.UserFacing(studygen.ErrEmptyNotes))
		return
	}

	ctx := llm.WithSessionID(r.Context(), "http:"+requestID(r))
	materials, err := h.generator.Generate(ctx, req.Notes)
	if err != nil {
		if errors.Is(err, studygen.ErrEmptyNotes) {
			respondError(w, r, http.StatusBadRequest, studygen.UserFacing(err))
			return
		}
		h.logger.ErrorContext(r.Context(), "study material generation failed",
			"error", err,
			"request_id", requestID(r))
		respondError(w, r, http.StatusBadGateway, studygen.UserFacing(err))
		return
	}

	h.logger.InfoContext(r.Context(), "study materials generated",
		"questions", len(materials.Questions),
		"flashcards", len(materials.Flashcards),
		"request_id", requestID(r))
	respondJSON(w, http.StatusOK, materials)
}

// Login handles POST /api/v1/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, LoginResponse{OK: false, Error: "invalid JSON body"})
		return
	}

	if !h.gate.Check(req.Username, req.Password) {
		h.logger.DebugContext(r.Context(), "login rejected", "request_id", requestID(r))
		respondJSON(w, http.StatusUnauthorized, LoginResponse{OK: false, Error: auth.InvalidCredentialsMessage})
		return
	}
	respondJSON(w, http.StatusOK, LoginResponse{OK: true})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
