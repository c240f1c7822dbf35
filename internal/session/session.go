// Package session orchestrates one user interaction: pick or create a
// project, normalize the submitted code, build the prompt, request a review,
// and — only on an explicit save — persist the result.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codemaster-gdg/codementor/internal/core"
	"github.com/codemaster-gdg/codementor/internal/llm"
	"github.com/codemaster-gdg/codementor/internal/normalizer"
	"github.com/codemaster-gdg/codementor/internal/storage"
)

// State is the explicit interaction state. It is mutated only through the
// named transitions below, never reached into directly.
type State struct {
	Mode            core.SourceType
	Blocks          []core.CodeBlock
	Guidelines      string
	SelectedProject *core.Project
}

// Deps are the collaborators a session orchestrates.
type Deps struct {
	Normalizer *normalizer.Normalizer
	Prompts    *llm.PromptManager
	Provider   llm.ModelProvider
	Generator  core.Generator
	Store      storage.Store
	Logger     *slog.Logger
}

// Session ties the pipeline together for one user. Reviewing and saving are
// decoupled: a generated review is returned to the caller and persisted only
// by a later explicit SaveReview call, so unwanted reviews can be discarded.
type Session struct {
	state State
	deps  Deps
}

// New returns a session in paste mode with no blocks.
func New(deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Session{
		state: State{Mode: core.SourcePaste},
		deps:  deps,
	}
}

// State returns a copy of the current interaction state.
func (s *Session) State() State {
	st := s.state
	st.Blocks = append([]core.CodeBlock(nil), s.state.Blocks...)
	return st
}

// SetMode switches the submission mode.
func (s *Session) SetMode(m core.SourceType) error {
	if !m.Valid() {
		return fmt.Errorf("unknown submission mode %q", m)
	}
	s.state.Mode = m
	return nil
}

// SetBlocks replaces the paste-mode block list.
func (s *Session) SetBlocks(blocks []core.CodeBlock) {
	s.state.Blocks = append([]core.CodeBlock(nil), blocks...)
}

// AddBlock appends an empty or prefilled paste block.
func (s *Session) AddBlock(b core.CodeBlock) {
	s.state.Blocks = append(s.state.Blocks, b)
}

// RemoveBlock deletes the block at index i, ignoring out-of-range indices.
func (s *Session) RemoveBlock(i int) {
	if i < 0 || i >= len(s.state.Blocks) {
		return
	}
	s.state.Blocks = append(s.state.Blocks[:i], s.state.Blocks[i+1:]...)
}

// SetGuidelines records the optional grading guidelines.
func (s *Session) SetGuidelines(g string) {
	s.state.Guidelines = g
}

// SelectProject targets an existing project for subsequent saves.
func (s *Session) SelectProject(p *core.Project) {
	s.state.SelectedProject = p
}

// ClearProject reverts to new-project mode.
func (s *Session) ClearProject() {
	s.state.SelectedProject = nil
}

// ReviewPastedBlocks reviews the session's paste blocks.
func (s *Session) ReviewPastedBlocks(ctx context.Context) (*core.ReviewResult, error) {
	if err := s.SetMode(core.SourcePaste); err != nil {
		return nil, err
	}
	bundle, err := s.deps.Normalizer.FromBlocks(s.state.Blocks)
	if err != nil {
		return nil, err
	}
	return s.review(ctx, bundle)
}

// ReviewUploads reviews a list of uploaded files.
func (s *Session) ReviewUploads(ctx context.Context, files []core.UploadedFile) (*core.ReviewResult, error) {
	if err := s.SetMode(core.SourceUpload); err != nil {
		return nil, err
	}
	bundle, err := s.deps.Normalizer.FromUploads(files)
	if err != nil {
		return nil, err
	}
	return s.review(ctx, bundle)
}

// ReviewRepository reviews a hosted repository by URL.
func (s *Session) ReviewRepository(ctx context.Context, repoURL string) (*core.ReviewResult, error) {
	if err := s.SetMode(core.SourceGitHub); err != nil {
		return nil, err
	}
	bundle, err := s.deps.Normalizer.FromRepository(ctx, repoURL)
	if err != nil {
		return nil, err
	}
	return s.review(ctx, bundle)
}

func (s *Session) review(ctx context.Context, bundle *core.SubmissionBundle) (*core.ReviewResult, error) {
	bundle.Guidelines = s.state.Guidelines

	prompt, err := s.deps.Prompts.BuildReviewPrompt(s.deps.Provider, bundle)
	if err != nil {
		return nil, err
	}

	feedback, err := s.deps.Generator.GenerateReview(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &core.ReviewResult{
		Feedback:   feedback,
		SourceType: s.state.Mode,
		Guidelines: s.state.Guidelines,
	}, nil
}

// SaveReview persists a previously generated result under the selected
// project, or finds-or-creates one by name when none is selected. This is the
// only path that writes review history.
func (s *Session) SaveReview(ctx context.Context, userID, projectName string, result *core.ReviewResult) (*core.ReviewRecord, error) {
	if result == nil {
		return nil, fmt.Errorf("nothing to save: no review result")
	}

	project := s.state.SelectedProject
	if project == nil {
		name := strings.TrimSpace(projectName)
		if name == "" {
			return nil, fmt.Errorf("a project name is required before saving")
		}
		var err error
		project, err = s.deps.Store.FindOrCreateProject(ctx, userID, name)
		if err != nil {
			return nil, err
		}
		s.state.SelectedProject = project
	}

	rec := &core.ReviewRecord{
		ProjectID:  project.ID,
		UserID:     userID,
		Feedback:   result.Feedback,
		SourceType: result.SourceType,
	}
	if g := strings.TrimSpace(result.Guidelines); g != "" {
		rec.Guidelines = &result.Guidelines
	}

	if _, err := s.deps.Store.AppendReview(ctx, rec); err != nil {
		return nil, err
	}

	s.deps.Logger.InfoContext(ctx, "review saved",
		"project", project.Name, "record", rec.ID, "source", rec.SourceType)
	return rec, nil
}
