package llm

import (
	"fmt"
	"strings"

	"github.com/codemaster-gdg/codementor/internal/core"
)

// reviewPromptData is the shape every code_review prompt template renders.
type reviewPromptData struct {
	StructurePreamble string
	Files             []core.CodeUnit
	Guidelines        string
}

// BuildReviewPrompt renders a submission bundle into the final review prompt.
// It is a pure function of its inputs: non-empty files appear in bundle
// order, each behind a '# FILE: <path>' marker, the structure preamble (if
// any) comes first, and the guidelines section is always present, using a
// fixed sentinel when no guidelines were supplied. Empty-content units are
// excluded here; a bundle with none left is invalid.
func (pm *PromptManager) BuildReviewPrompt(provider ModelProvider, bundle *core.SubmissionBundle) (string, error) {
	if bundle == nil {
		return "", fmt.Errorf("submission bundle is nil")
	}
	files := make([]core.CodeUnit, 0, len(bundle.Units))
	for _, u := range bundle.Units {
		if strings.TrimSpace(u.Content) == "" {
			continue
		}
		files = append(files, u)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("submission bundle has no non-empty code units")
	}

	return pm.Render(CodeReviewPrompt, provider, reviewPromptData{
		StructurePreamble: bundle.StructurePreamble,
		Files:             files,
		Guidelines:        bundle.Guidelines,
	})
}
