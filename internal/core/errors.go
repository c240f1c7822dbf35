package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput signals that a submission contained nothing reviewable.
	ErrEmptyInput = errors.New("no reviewable code was supplied")
	// ErrInvalidRepoURL signals a malformed repository reference, reported
	// before any clone is attempted.
	ErrInvalidRepoURL = errors.New("invalid GitHub repository URL")
	// ErrNoCodeFound signals a reachable repository with no supported code files.
	ErrNoCodeFound = errors.New("no supported code files found in the repository")
	// ErrProjectNotFound signals a project id or name that does not exist for
	// the requesting user. Another user's project is indistinguishable from a
	// missing one.
	ErrProjectNotFound = errors.New("project not found")
	// ErrVerification signals an invalid or expired identity token.
	ErrVerification = errors.New("identity token verification failed")
)

// CloneError wraps a transport or auth failure while materializing a repository.
type CloneError struct {
	URL string
	Err error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("failed to clone repository %s: %v", e.URL, e.Err)
}

func (e *CloneError) Unwrap() error { return e.Err }

// GenerationError wraps a failure of the remote text-generation service,
// preserving the upstream detail for display.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("review generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
