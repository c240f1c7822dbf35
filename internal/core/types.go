// Package core defines the domain types, collaborator interfaces, and error
// taxonomy shared by every component of the application. The types here are
// deliberately free of storage or transport concerns so that implementations
// can be swapped out in tests.
package core

import "time"

// SourceType identifies how the code under review was submitted.
type SourceType string

const (
	SourceUpload SourceType = "upload"
	SourcePaste  SourceType = "paste"
	SourceGitHub SourceType = "github"
)

// Valid reports whether s is one of the known submission modes.
func (s SourceType) Valid() bool {
	switch s {
	case SourceUpload, SourcePaste, SourceGitHub:
		return true
	default:
		return false
	}
}

// CodeBlock is one editable paste-mode block as maintained by the caller.
type CodeBlock struct {
	Filename string `json:"filename" yaml:"filename"`
	Content  string `json:"content" yaml:"content"`
}

// UploadedFile is an opaque uploaded file: a display name and its raw bytes.
type UploadedFile struct {
	Name string
	Data []byte
}

// CodeUnit is one logical source file ready for prompting. Path is a relative
// display key and is not required to be unique within a bundle.
type CodeUnit struct {
	Path    string
	Content string
}

// SubmissionBundle is the canonical representation all three submission modes
// normalize into. Units are ordered; StructurePreamble is only set for
// repository submissions. A bundle with zero units must never reach the
// prompt builder.
type SubmissionBundle struct {
	Units             []CodeUnit
	StructurePreamble string
	Guidelines        string
}

// User is an authenticated user as reported by the identity provider.
type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
}

// Project groups the reviews a user has saved under one name.
type Project struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProjectSummary is one entry of a user's project listing. LastReviewedAt is
// nil for projects that have never been reviewed; those sort last.
type ProjectSummary struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

// ReviewRecord is one immutable entry of a project's append-only review
// history. Guidelines is nil when the review ran without any.
type ReviewRecord struct {
	ID         string     `db:"id" json:"id"`
	ProjectID  string     `db:"project_id" json:"project_id"`
	UserID     string     `db:"user_id" json:"-"`
	Feedback   string     `db:"feedback" json:"feedback"`
	SourceType SourceType `db:"source_type" json:"source_type"`
	Guidelines *string    `db:"guidelines" json:"guidelines,omitempty"`
	ReviewedAt time.Time  `db:"reviewed_at" json:"reviewed_at"`
}

// ReviewResult is the outcome of one successful generation run. It is held by
// the caller until an explicit save decision; nothing is persisted before that.
type ReviewResult struct {
	Feedback   string     `json:"feedback"`
	SourceType SourceType `json:"source_type"`
	Guidelines string     `json:"guidelines,omitempty"`
}
