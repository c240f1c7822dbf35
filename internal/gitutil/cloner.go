// Package gitutil provides a client for working with Git repositories.
package gitutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/go-git/go-git/v5"

	"github.com/codemaster-gdg/codementor/internal/core"
)

// Client materializes remote repositories on local disk.
type Client struct {
	// BaseDir is where temporary clones are created. Empty means the
	// system temp directory.
	BaseDir string
	Logger  *slog.Logger
}

// NewClient returns a new Client instance.
func NewClient(baseDir string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{BaseDir: baseDir, Logger: logger}
}

// Clone clones a repository into path. A pre-existing tree at path, including
// a partial clone left by a failed earlier attempt, is removed first so stale
// and fresh files never mix.
func (c *Client) Clone(ctx context.Context, repoURL, path string) error {
	if _, err := os.Stat(path); err == nil {
		c.Logger.InfoContext(ctx, "removing stale clone target", "path", path)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove stale clone target %s: %w", path, err)
		}
	}

	c.Logger.InfoContext(ctx, "cloning repository", "url", repoURL, "path", path)
	// Use git CLI to clone with longpaths enabled
	cmd := exec.CommandContext(ctx, "git", "-c", "core.longpaths=true", "clone", "--depth", "1", repoURL, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return &core.CloneError{URL: repoURL, Err: fmt.Errorf("git clone failed: %s: %w", string(out), err)}
	}

	// Make sure go-git can open what the CLI produced.
	if _, err := git.PlainOpen(path); err != nil {
		return &core.CloneError{URL: repoURL, Err: fmt.Errorf("failed to open cloned repo: %w", err)}
	}
	return nil
}

// CloneTemp clones a repository into a fresh temporary directory and returns
// the path with a cleanup function.
func (c *Client) CloneTemp(ctx context.Context, repoURL string) (string, func(), error) {
	repoPath, err := os.MkdirTemp(c.BaseDir, "codementor-repo-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() {
		c.Logger.Info("cleaning up temporary repository", "path", repoPath)
		if removeErr := os.RemoveAll(repoPath); removeErr != nil {
			c.Logger.Error("failed to remove temp repo", "path", repoPath, "error", removeErr)
		}
	}

	if err := c.Clone(ctx, repoURL, repoPath); err != nil {
		cleanup()
		return "", nil, err
	}

	c.Logger.InfoContext(ctx, "repository cloned successfully", "path", repoPath)
	return repoPath, cleanup, nil
}
