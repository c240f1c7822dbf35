package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemaster-gdg/codementor/internal/core"
)

func TestParseManifest(t *testing.T) {
	t.Run("Current block schema", func(t *testing.T) {
		data := []byte(`
- filename: main.py
  content: |
    print(1)
- filename: util.py
  content: pass
`)
		blocks, err := ParseManifest(data)
		require.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.Equal(t, "main.py", blocks[0].Filename)
		assert.Equal(t, "print(1)\n", blocks[0].Content)
		assert.Equal(t, core.CodeBlock{Filename: "util.py", Content: "pass"}, blocks[1])
	})

	t.Run("Legacy string-list schema is upgraded on read", func(t *testing.T) {
		data := []byte(`
- "print(1)"
- "x = 2"
`)
		blocks, err := ParseManifest(data)
		require.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.Equal(t, core.CodeBlock{Filename: "file1.py", Content: "print(1)"}, blocks[0])
		assert.Equal(t, core.CodeBlock{Filename: "file2.py", Content: "x = 2"}, blocks[1])
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		_, err := ParseManifest([]byte(`{broken`))
		assert.Error(t, err)
	})
}
