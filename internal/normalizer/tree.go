package normalizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// renderTree creates a tree-like rendering of the directory under root,
// used as the structural preamble for repository submissions.
func renderTree(root string) (string, error) {
	var builder strings.Builder
	builder.WriteString(filepath.Base(root) + "/\n")

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if rel == "." {
			return nil
		}

		// Skip hidden
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		depth := strings.Count(rel, string(os.PathSeparator))
		indent := strings.Repeat("  ", depth+1)

		if info.IsDir() {
			builder.WriteString(fmt.Sprintf("%s%s/\n", indent, info.Name()))
		} else {
			builder.WriteString(fmt.Sprintf("%s%s\n", indent, info.Name()))
		}
		return nil
	})

	return builder.String(), err
}
