// Package storage owns the persisted data model: per-user projects, each with
// an append-only history of review records.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"

	"github.com/codemaster-gdg/codementor/internal/core"
)

// Store defines the interface for all database operations.
//
// Writes fail loudly: a failed insert is surfaced to the caller because
// silently losing a review is unacceptable. Reads degrade gracefully: on a
// storage fault they log and return an empty result instead of an error.
type Store interface {
	UpsertUser(ctx context.Context, user *core.User) error
	GetProject(ctx context.Context, userID, projectID string) (*core.Project, error)
	FindProjectByName(ctx context.Context, userID, name string) (*core.Project, error)
	FindOrCreateProject(ctx context.Context, userID, name string) (*core.Project, error)
	AppendReview(ctx context.Context, rec *core.ReviewRecord) (string, error)
	ListProjects(ctx context.Context, userID string) []core.ProjectSummary
	RecentReviews(ctx context.Context, userID, projectID string, limit int) []core.ReviewRecord
}

type sqlStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store backed by db. Queries use '?' placeholders and
// are rebound per driver, so the same store runs on Postgres in production and
// on SQLite in tests.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &sqlStore{db: db, logger: logger}
}

// UpsertUser records a verified user, creating the row on first login and
// refreshing the display email afterwards.
func (s *sqlStore) UpsertUser(ctx context.Context, user *core.User) error {
	query := s.db.Rebind(`
		INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET email = excluded.email`)
	_, err := s.db.ExecContext(ctx, query, user.ID, user.Email, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.ID, err)
	}
	return nil
}

// GetProject returns the project only when it exists and belongs to userID;
// anything else is core.ErrProjectNotFound, so one user can never reach into
// another user's history.
func (s *sqlStore) GetProject(ctx context.Context, userID, projectID string) (*core.Project, error) {
	query := s.db.Rebind(`
		SELECT id, user_id, name, created_at FROM projects
		WHERE id = ? AND user_id = ?`)

	var p core.Project
	err := s.db.GetContext(ctx, &p, query, projectID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrProjectNotFound, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up project %s: %w", projectID, err)
	}
	return &p, nil
}

// FindProjectByName returns the user's project with an exact, case-sensitive
// name match. Duplicate names (possible under the documented find-or-create
// race, or from legacy writes) resolve deterministically to the oldest row.
func (s *sqlStore) FindProjectByName(ctx context.Context, userID, name string) (*core.Project, error) {
	query := s.db.Rebind(`
		SELECT id, user_id, name, created_at FROM projects
		WHERE user_id = ? AND name = ?
		ORDER BY created_at ASC, id ASC
		LIMIT 1`)

	var p core.Project
	err := s.db.GetContext(ctx, &p, query, userID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", core.ErrProjectNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up project %q: %w", name, err)
	}
	return &p, nil
}

// FindOrCreateProject returns the named project, creating it when absent.
func (s *sqlStore) FindOrCreateProject(ctx context.Context, userID, name string) (*core.Project, error) {
	existing, err := s.FindProjectByName(ctx, userID, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, core.ErrProjectNotFound) {
		return nil, err
	}

	p := core.Project{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	insert := s.db.Rebind(`INSERT INTO projects (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, insert, p.ID, p.UserID, p.Name, p.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create project %q: %w", name, err)
	}
	return &p, nil
}

// AppendReview inserts a new review record as a single atomic write and
// returns its id. The timestamp is set here, at write time, in UTC; the id is
// a ULID so records within one project also sort by insertion order.
func (s *sqlStore) AppendReview(ctx context.Context, rec *core.ReviewRecord) (string, error) {
	rec.ID = ulid.Make().String()
	rec.ReviewedAt = time.Now().UTC()

	query := s.db.Rebind(`
		INSERT INTO reviews (id, project_id, user_id, feedback, source_type, guidelines, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.ProjectID, rec.UserID, rec.Feedback, string(rec.SourceType), rec.Guidelines, rec.ReviewedAt)
	if err != nil {
		return "", fmt.Errorf("failed to save review for project %s: %w", rec.ProjectID, err)
	}
	return rec.ID, nil
}

// ListProjects returns the user's projects ordered most-recently-reviewed
// first; projects with no reviews yet appear last.
func (s *sqlStore) ListProjects(ctx context.Context, userID string) []core.ProjectSummary {
	query := s.db.Rebind(`SELECT id, user_id, name, created_at FROM projects WHERE user_id = ?`)
	var projects []core.Project
	if err := s.db.SelectContext(ctx, &projects, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to list projects, returning empty result", "user", userID, "error", err)
		return []core.ProjectSummary{}
	}

	// Latest review time per project, computed client-side so the query stays
	// portable across drivers.
	type reviewTime struct {
		ProjectID  string    `db:"project_id"`
		ReviewedAt time.Time `db:"reviewed_at"`
	}
	var times []reviewTime
	tq := s.db.Rebind(`SELECT project_id, reviewed_at FROM reviews WHERE user_id = ?`)
	if err := s.db.SelectContext(ctx, &times, tq, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to load review times, returning empty result", "user", userID, "error", err)
		return []core.ProjectSummary{}
	}

	latest := make(map[string]time.Time, len(projects))
	for _, t := range times {
		if cur, ok := latest[t.ProjectID]; !ok || t.ReviewedAt.After(cur) {
			latest[t.ProjectID] = t.ReviewedAt
		}
	}

	summaries := make([]core.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summary := core.ProjectSummary{ID: p.ID, Name: p.Name}
		if ts, ok := latest[p.ID]; ok {
			t := ts
			summary.LastReviewedAt = &t
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].LastReviewedAt, summaries[j].LastReviewedAt
		switch {
		case a == nil && b == nil:
			return false
		case b == nil:
			return true
		case a == nil:
			return false
		default:
			return a.After(*b)
		}
	})
	return summaries
}

// RecentReviews returns up to limit records for the project, newest first.
// Fewer records than limit is normal; none at all yields an empty slice, not
// an error.
func (s *sqlStore) RecentReviews(ctx context.Context, userID, projectID string, limit int) []core.ReviewRecord {
	if limit <= 0 {
		return []core.ReviewRecord{}
	}
	query := s.db.Rebind(`
		SELECT id, project_id, user_id, feedback, source_type, guidelines, reviewed_at
		FROM reviews
		WHERE user_id = ? AND project_id = ?
		ORDER BY reviewed_at DESC, id DESC
		LIMIT ?`)

	var records []core.ReviewRecord
	if err := s.db.SelectContext(ctx, &records, query, userID, projectID, limit); err != nil {
		s.logger.ErrorContext(ctx, "failed to load recent reviews, returning empty result",
			"user", userID, "project", projectID, "error", err)
		return []core.ReviewRecord{}
	}
	if records == nil {
		records = []core.ReviewRecord{}
	}
	return records
}
