package core

import "context"

// TokenVerifier validates an opaque identity token and resolves it to a user.
// The core trusts the verifier completely; it performs no cryptographic checks
// of its own beyond what the implementation provides.
type TokenVerifier interface {
	Verify(token string) (*User, error)
}

// Generator produces review feedback for a fully-built prompt. Exactly one
// feedback text or one explicit error; implementations must never return an
// empty text silently.
type Generator interface {
	GenerateReview(ctx context.Context, prompt string) (string, error)
}

// RepoMaterializer turns a repository URL into a local working tree. The
// returned cleanup func removes the tree and is safe to call exactly once.
type RepoMaterializer interface {
	CloneTemp(ctx context.Context, repoURL string) (path string, cleanup func(), err error)
}
