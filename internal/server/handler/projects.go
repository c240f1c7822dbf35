package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/codemaster-gdg/codementor/internal/core"
)

const defaultRecentLimit = 3

// ProjectsHandler serves project listings and review history.
type ProjectsHandler struct {
	deps *Deps
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(deps *Deps) *ProjectsHandler {
	return &ProjectsHandler{deps: deps}
}

type projectListResponse struct {
	Projects []core.ProjectSummary `json:"projects"`
}

// List returns the user's projects, most recently reviewed first. Store read
// faults degrade to an empty list.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
		return
	}

	projects := h.deps.Store.ListProjects(r.Context(), user.ID)
	writeJSON(w, http.StatusOK, projectListResponse{Projects: projects})
}

type reviewListResponse struct {
	Reviews []core.ReviewRecord `json:"reviews"`
}

// RecentReviews returns the newest reviews of one project, bounded by the
// limit query parameter (default 3).
func (h *ProjectsHandler) RecentReviews(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
		return
	}

	projectID := chi.URLParam(r, "projectID")

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	reviews := h.deps.Store.RecentReviews(r.Context(), user.ID, projectID, limit)
	writeJSON(w, http.StatusOK, reviewListResponse{Reviews: reviews})
}
