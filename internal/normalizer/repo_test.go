package normalizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemaster-gdg/codementor/internal/core"
)

// fakeCloner serves a prepared local directory instead of cloning and records
// whether it was invoked.
type fakeCloner struct {
	path    string
	err     error
	calls   int
	cleaned bool
}

func (f *fakeCloner) CloneTemp(_ context.Context, _ string) (string, func(), error) {
	f.calls++
	if f.err != nil {
		return "", nil, f.err
	}
	return f.path, func() { f.cleaned = true }, nil
}

func writeFixture(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestFromRepository(t *testing.T) {
	t.Run("Malformed URL rejected before any clone", func(t *testing.T) {
		cloner := &fakeCloner{}
		n := New(cloner, nil)

		_, err := n.FromRepository(context.Background(), "not-a-url")
		assert.True(t, errors.Is(err, core.ErrInvalidRepoURL))
		assert.Zero(t, cloner.calls, "clone collaborator must not be invoked")
	})

	t.Run("Clone failure surfaces as CloneError", func(t *testing.T) {
		cloner := &fakeCloner{err: &core.CloneError{URL: "https://github.com/o/r", Err: errors.New("auth failed")}}
		n := New(cloner, nil)

		_, err := n.FromRepository(context.Background(), "https://github.com/o/r")
		var cloneErr *core.CloneError
		assert.True(t, errors.As(err, &cloneErr))
	})

	t.Run("Enumerates allow-listed files relative to the root", func(t *testing.T) {
		root := t.TempDir()
		writeFixture(t, root, map[string]string{
			"main.py":           "print(1)",
			"src/app.js":        "console.log(1);",
			"src/style.css":     "body {}",
			"README.md":         "# readme",
			"assets/logo.png":   "\x89PNG",
			".git/config":       "[core]",
			".github/ci.yml":    "on: push",
			"notes/summary.txt": "notes",
		})

		cloner := &fakeCloner{path: root}
		n := New(cloner, nil)

		bundle, err := n.FromRepository(context.Background(), "https://github.com/octocat/hello-world")
		require.NoError(t, err)

		paths := make([]string, len(bundle.Units))
		for i, u := range bundle.Units {
			paths[i] = u.Path
		}
		assert.Equal(t, []string{"main.py", "src/app.js", "src/style.css"}, paths)
		assert.NotEmpty(t, bundle.StructurePreamble)
		assert.Contains(t, bundle.StructurePreamble, "main.py")
		assert.True(t, cloner.cleaned, "clone directory must be cleaned up")
	})

	t.Run("Repository with no supported code files", func(t *testing.T) {
		root := t.TempDir()
		writeFixture(t, root, map[string]string{
			"README.md":       "# readme",
			"assets/logo.png": "\x89PNG",
		})

		n := New(&fakeCloner{path: root}, nil)
		_, err := n.FromRepository(context.Background(), "https://github.com/octocat/empty")
		assert.True(t, errors.Is(err, core.ErrNoCodeFound))
	})
}
