package session

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codemaster-gdg/codementor/internal/core"
)

// Paste manifests let the CLI submit paste-mode blocks from a file. The
// current schema is a list of {filename, content} mappings. An older schema
// was a bare list of code strings; it is upgraded by a pure transform on
// read and never written back.

// ParseManifest decodes a paste manifest, upgrading the legacy shape when
// detected.
func ParseManifest(data []byte) ([]core.CodeBlock, error) {
	var blocks []core.CodeBlock
	if err := yaml.Unmarshal(data, &blocks); err == nil {
		return blocks, nil
	}

	var legacy []string
	if err := yaml.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("manifest is neither a block list nor a legacy string list: %w", err)
	}
	return upgradeLegacyBlocks(legacy), nil
}

// LoadManifest reads and parses a paste manifest file.
func LoadManifest(path string) ([]core.CodeBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// upgradeLegacyBlocks converts the legacy plain-string schema into blocks with
// generated filenames, preserving order.
func upgradeLegacyBlocks(contents []string) []core.CodeBlock {
	blocks := make([]core.CodeBlock, len(contents))
	for i, c := range contents {
		blocks[i] = core.CodeBlock{
			Filename: fmt.Sprintf("file%d.py", i+1),
			Content:  c,
		}
	}
	return blocks
}
