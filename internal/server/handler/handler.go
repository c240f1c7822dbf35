// Package handler provides the HTTP handlers for the review API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/codemaster-gdg/codementor/internal/core"
	"github.com/codemaster-gdg/codementor/internal/llm"
	"github.com/codemaster-gdg/codementor/internal/normalizer"
	"github.com/codemaster-gdg/codementor/internal/storage"
)

// Deps holds the collaborators the handlers orchestrate per request.
type Deps struct {
	Verifier   core.TokenVerifier
	Normalizer *normalizer.Normalizer
	Prompts    *llm.PromptManager
	Provider   llm.ModelProvider
	Generator  core.Generator
	Store      storage.Store
	Logger     *slog.Logger
	Validate   *validator.Validate
}

// NewDeps fills in defaults for optional fields.
func NewDeps(d Deps) *Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Validate == nil {
		d.Validate = validator.New()
	}
	return &d
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the error taxonomy onto HTTP statuses. Input-shape problems
// are the user's to fix (422); collaborator failures surface verbatim (502);
// anything else is a server fault.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var cloneErr *core.CloneError
	var genErr *core.GenerationError

	switch {
	case errors.Is(err, core.ErrEmptyInput),
		errors.Is(err, core.ErrInvalidRepoURL),
		errors.Is(err, core.ErrNoCodeFound):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrProjectNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &cloneErr), errors.As(err, &genErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrVerification):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
