package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/codemaster-gdg/codementor/internal/core"
	"github.com/codemaster-gdg/codementor/internal/session"
)

// maxUploadBytes bounds one multipart submission.
const maxUploadBytes = 32 << 20

// ReviewHandler serves review generation and the explicit save step.
type ReviewHandler struct {
	deps *Deps
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(deps *Deps) *ReviewHandler {
	return &ReviewHandler{deps: deps}
}

func (h *ReviewHandler) newSession() *session.Session {
	return session.New(session.Deps{
		Normalizer: h.deps.Normalizer,
		Prompts:    h.deps.Prompts,
		Provider:   h.deps.Provider,
		Generator:  h.deps.Generator,
		Store:      h.deps.Store,
		Logger:     h.deps.Logger,
	})
}

type submitRequest struct {
	Mode       core.SourceType  `json:"mode" validate:"required,oneof=paste github"`
	Blocks     []core.CodeBlock `json:"blocks" validate:"required_if=Mode paste,dive"`
	RepoURL    string           `json:"repo_url" validate:"required_if=Mode github"`
	Guidelines string           `json:"guidelines"`
}

// Submit runs the review pipeline for paste and repository submissions.
// Nothing is persisted; the feedback is returned for the user to keep or
// discard.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := h.deps.Validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	sess := h.newSession()
	sess.SetGuidelines(req.Guidelines)

	var result *core.ReviewResult
	var err error
	switch req.Mode {
	case core.SourcePaste:
		sess.SetBlocks(req.Blocks)
		result, err = sess.ReviewPastedBlocks(r.Context())
	case core.SourceGitHub:
		result, err = sess.ReviewRepository(r.Context(), req.RepoURL)
	}
	if err != nil {
		writeError(w, h.deps.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SubmitUpload runs the review pipeline for multipart file uploads. Files go
// under the "files" field, guidelines under an optional "guidelines" field.
func (h *ReviewHandler) SubmitUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart body"})
		return
	}

	var files []core.UploadedFile
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("cannot read upload %s", fh.Filename)})
				return
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("cannot read upload %s", fh.Filename)})
				return
			}
			files = append(files, core.UploadedFile{Name: fh.Filename, Data: data})
		}
	}

	sess := h.newSession()
	sess.SetGuidelines(r.FormValue("guidelines"))

	result, err := sess.ReviewUploads(r.Context(), files)
	if err != nil {
		writeError(w, h.deps.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type saveRequest struct {
	ProjectID   string          `json:"project_id"`
	ProjectName string          `json:"project_name" validate:"required_without=ProjectID"`
	Feedback    string          `json:"feedback" validate:"required"`
	SourceType  core.SourceType `json:"source_type" validate:"required,oneof=upload paste github"`
	Guidelines  string          `json:"guidelines"`
}

type saveResponse struct {
	ProjectID string `json:"project_id"`
	ReviewID  string `json:"review_id"`
}

// Save persists a previously generated review. It is a separate, explicit
// step so a review can be discarded; a failed write is surfaced, never
// swallowed.
func (h *ReviewHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := h.deps.Validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	sess := h.newSession()
	if req.ProjectID != "" {
		// The id must resolve to one of the caller's own projects before
		// anything is appended under it.
		project, err := h.deps.Store.GetProject(r.Context(), user.ID, req.ProjectID)
		if err != nil {
			writeError(w, h.deps.Logger, err)
			return
		}
		sess.SelectProject(project)
	}

	rec, err := sess.SaveReview(r.Context(), user.ID, req.ProjectName, &core.ReviewResult{
		Feedback:   req.Feedback,
		SourceType: req.SourceType,
		Guidelines: req.Guidelines,
	})
	if err != nil {
		writeError(w, h.deps.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, saveResponse{ProjectID: rec.ProjectID, ReviewID: rec.ID})
}
