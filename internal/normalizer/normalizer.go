// Package normalizer converts the three heterogeneous submission modes
// (pasted blocks, uploaded files, cloned repositories) into one canonical
// SubmissionBundle so the prompt builder stays mode-agnostic.
package normalizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codemaster-gdg/codementor/internal/core"
	"github.com/codemaster-gdg/codementor/internal/gitutil"
)

// Normalizer produces SubmissionBundles from user input.
type Normalizer struct {
	cloner core.RepoMaterializer
	logger *slog.Logger
}

// New returns a Normalizer. The cloner is only needed for repository mode.
func New(cloner core.RepoMaterializer, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{cloner: cloner, logger: logger}
}

// FromBlocks normalizes paste-mode blocks. Blocks whose content is empty or
// whitespace-only are dropped; if nothing survives the submission fails with
// core.ErrEmptyInput.
func (n *Normalizer) FromBlocks(blocks []core.CodeBlock) (*core.SubmissionBundle, error) {
	units := make([]core.CodeUnit, 0, len(blocks))
	for _, b := range blocks {
		if strings.TrimSpace(b.Content) == "" {
			continue
		}
		units = append(units, core.CodeUnit{Path: b.Filename, Content: b.Content})
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("%w: paste at least one non-empty code block", core.ErrEmptyInput)
	}
	return &core.SubmissionBundle{Units: units}, nil
}

// FromUploads normalizes uploaded files, one CodeUnit per file. Every file
// yields text: bytes are decoded as UTF-8 and fall back to Latin-1 on invalid
// sequences, so decoding never fails outright. Empty units stay in the bundle
// (the prompt builder excludes them), but a submission with no non-empty
// content at all fails with core.ErrEmptyInput.
func (n *Normalizer) FromUploads(files []core.UploadedFile) (*core.SubmissionBundle, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: upload at least one file", core.ErrEmptyInput)
	}
	units := make([]core.CodeUnit, 0, len(files))
	nonEmpty := 0
	for _, f := range files {
		u := core.CodeUnit{Path: f.Name, Content: decodeText(f.Data)}
		if strings.TrimSpace(u.Content) != "" {
			nonEmpty++
		}
		units = append(units, u)
	}
	if nonEmpty == 0 {
		return nil, fmt.Errorf("%w: every uploaded file was empty", core.ErrEmptyInput)
	}
	return &core.SubmissionBundle{Units: units}, nil
}

// FromRepository validates the URL, clones the repository, and normalizes all
// files matching the extension allow-list. The bundle carries a rendered
// directory tree as its structure preamble. A reachable repository with no
// supported code files fails with core.ErrNoCodeFound.
func (n *Normalizer) FromRepository(ctx context.Context, repoURL string) (*core.SubmissionBundle, error) {
	cleanURL, err := gitutil.ValidateRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	repoPath, cleanup, err := n.cloner.CloneTemp(ctx, cleanURL)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	tree, err := renderTree(repoPath)
	if err != nil {
		// The tree is context, not content; a failed rendering should not
		// sink the whole review.
		n.logger.WarnContext(ctx, "failed to render project tree", "error", err)
		tree = ""
	}

	units, err := n.collectCodeFiles(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, core.ErrNoCodeFound
	}

	return &core.SubmissionBundle{Units: units, StructurePreamble: tree}, nil
}
