package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemaster-gdg/codementor/internal/core"
)

func TestFromUploads(t *testing.T) {
	n := New(nil, nil)

	t.Run("Empty file list", func(t *testing.T) {
		_, err := n.FromUploads(nil)
		assert.True(t, errors.Is(err, core.ErrEmptyInput))
	})

	t.Run("UTF-8 files decode verbatim", func(t *testing.T) {
		bundle, err := n.FromUploads([]core.UploadedFile{
			{Name: "main.py", Data: []byte("print('héllo')")},
			{Name: "util.js", Data: []byte("console.log(1);")},
		})
		require.NoError(t, err)
		require.Len(t, bundle.Units, 2)
		assert.Equal(t, "main.py", bundle.Units[0].Path)
		assert.Equal(t, "print('héllo')", bundle.Units[0].Content)
		assert.Equal(t, "console.log(1);", bundle.Units[1].Content)
	})

	t.Run("Invalid UTF-8 falls back to Latin-1 without error", func(t *testing.T) {
		// 0xE9 is 'é' in Latin-1 and an invalid standalone byte in UTF-8.
		bundle, err := n.FromUploads([]core.UploadedFile{
			{Name: "legacy.c", Data: []byte{'/', '/', ' ', 0xE9, 't', 0xE9}},
		})
		require.NoError(t, err)
		require.Len(t, bundle.Units, 1)
		assert.Equal(t, "// été", bundle.Units[0].Content)
	})

	t.Run("All files empty", func(t *testing.T) {
		_, err := n.FromUploads([]core.UploadedFile{
			{Name: "empty.py", Data: nil},
			{Name: "blank.py", Data: []byte("  \n")},
		})
		assert.True(t, errors.Is(err, core.ErrEmptyInput))
	})

	t.Run("One CodeUnit per input file", func(t *testing.T) {
		bundle, err := n.FromUploads([]core.UploadedFile{
			{Name: "empty.py", Data: nil},
			{Name: "main.py", Data: []byte("print(1)")},
		})
		require.NoError(t, err)
		require.Len(t, bundle.Units, 2)
		assert.Equal(t, "empty.py", bundle.Units[0].Path)
		assert.Equal(t, "main.py", bundle.Units[1].Path)
	})
}
