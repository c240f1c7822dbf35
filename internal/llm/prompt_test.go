package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemaster-gdg/codementor/internal/core"
)

func newTestManager(t *testing.T) *PromptManager {
	t.Helper()
	pm, err := NewPromptManager()
	require.NoError(t, err)
	return pm
}

func TestBuildReviewPrompt(t *testing.T) {
	pm := newTestManager(t)

	bundle := &core.SubmissionBundle{
		Units: []core.CodeUnit{
			{Path: "main.py", Content: "print(1)"},
			{Path: "util.py", Content: "def f():\n    pass"},
		},
	}

	t.Run("File markers and section contract", func(t *testing.T) {
		prompt, err := pm.BuildReviewPrompt(DefaultProvider, bundle)
		require.NoError(t, err)

		assert.Contains(t, prompt, "# FILE: main.py")
		assert.Contains(t, prompt, "# FILE: util.py")
		assert.Contains(t, prompt, "print(1)")

		// The four-section output contract the display layer relies on.
		assert.Contains(t, prompt, "**Good Practices Used**")
		assert.Contains(t, prompt, "**Issues, Bugs, or Bad Practices**")
		assert.Contains(t, prompt, "**Suggestions for Improvement**")
		assert.Contains(t, prompt, "**Time and Space Complexity")

		// Files keep bundle order.
		assert.Less(t, strings.Index(prompt, "# FILE: main.py"), strings.Index(prompt, "# FILE: util.py"))
	})

	t.Run("Sentinel when no guidelines", func(t *testing.T) {
		prompt, err := pm.BuildReviewPrompt(DefaultProvider, bundle)
		require.NoError(t, err)
		assert.Contains(t, prompt, "No specific guidelines provided.")
	})

	t.Run("Guidelines appear verbatim", func(t *testing.T) {
		withGuidelines := *bundle
		withGuidelines.Guidelines = "Use type hints everywhere.\nNo global state."
		prompt, err := pm.BuildReviewPrompt(DefaultProvider, &withGuidelines)
		require.NoError(t, err)
		assert.Contains(t, prompt, "Use type hints everywhere.\nNo global state.")
		assert.NotContains(t, prompt, "No specific guidelines provided.")
	})

	t.Run("Structure preamble comes before the files", func(t *testing.T) {
		withTree := *bundle
		withTree.StructurePreamble = "repo/\n  main.py\n  util.py\n"
		prompt, err := pm.BuildReviewPrompt(DefaultProvider, &withTree)
		require.NoError(t, err)
		assert.Contains(t, prompt, "Project Structure")
		assert.Less(t, strings.Index(prompt, "Project Structure"), strings.Index(prompt, "# FILE: main.py"))
	})

	t.Run("Empty-content units are excluded", func(t *testing.T) {
		mixed := &core.SubmissionBundle{
			Units: []core.CodeUnit{
				{Path: "main.py", Content: "print(1)"},
				{Path: "empty.py", Content: "   "},
			},
		}
		prompt, err := pm.BuildReviewPrompt(DefaultProvider, mixed)
		require.NoError(t, err)
		assert.Contains(t, prompt, "# FILE: main.py")
		assert.NotContains(t, prompt, "# FILE: empty.py")
	})

	t.Run("Bundle with nothing reviewable is invalid", func(t *testing.T) {
		_, err := pm.BuildReviewPrompt(DefaultProvider, &core.SubmissionBundle{})
		assert.Error(t, err)
	})

	t.Run("Deterministic output", func(t *testing.T) {
		a, err := pm.BuildReviewPrompt(DefaultProvider, bundle)
		require.NoError(t, err)
		b, err := pm.BuildReviewPrompt(DefaultProvider, bundle)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Unknown provider falls back to default", func(t *testing.T) {
		prompt, err := pm.BuildReviewPrompt(ModelProvider("gemini"), bundle)
		require.NoError(t, err)
		assert.Contains(t, prompt, "# FILE: main.py")
	})
}
