package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemaster-gdg/codementor/internal/core"
)

func TestFromBlocks(t *testing.T) {
	n := New(nil, nil)

	tests := []struct {
		name      string
		blocks    []core.CodeBlock
		wantPaths []string
		wantErr   error
	}{
		{
			name: "Keeps non-empty blocks in order",
			blocks: []core.CodeBlock{
				{Filename: "main.py", Content: "print(1)"},
				{Filename: "util.py", Content: "def f():\n    pass"},
			},
			wantPaths: []string{"main.py", "util.py"},
		},
		{
			name: "Drops empty and whitespace-only blocks",
			blocks: []core.CodeBlock{
				{Filename: "main.py", Content: "print(1)"},
				{Filename: "empty.py", Content: ""},
				{Filename: "blank.py", Content: "   \n\t  "},
			},
			wantPaths: []string{"main.py"},
		},
		{
			name:    "No blocks at all",
			blocks:  nil,
			wantErr: core.ErrEmptyInput,
		},
		{
			name: "Every block whitespace-only",
			blocks: []core.CodeBlock{
				{Filename: "a.py", Content: " "},
				{Filename: "b.py", Content: "\n\n"},
			},
			wantErr: core.ErrEmptyInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, err := n.FromBlocks(tt.blocks)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			paths := make([]string, len(bundle.Units))
			for i, u := range bundle.Units {
				paths[i] = u.Path
			}
			assert.Equal(t, tt.wantPaths, paths)
			assert.Empty(t, bundle.StructurePreamble)
		})
	}
}
