package normalizer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/codemaster-gdg/codementor/internal/core"
)

// codeExtensions is the fixed allow-list of reviewable file extensions.
// Exclusion is by extension only; no size or content sniffing.
var codeExtensions = map[string]bool{
	".py":    true,
	".ipynb": true,
	".c":     true,
	".h":     true,
	".cpp":   true,
	".hpp":   true,
	".cs":    true,
	".java":  true,
	".js":    true,
	".ts":    true,
	".go":    true,
	".rs":    true,
	".rb":    true,
	".kt":    true,
	".html":  true,
	".css":   true,
}

func isCodeExtension(ext string) bool {
	return codeExtensions[strings.ToLower(ext)]
}

// collectCodeFiles walks root and returns one CodeUnit per allow-listed file,
// ordered by relative path. Hidden directories (including .git) are skipped
// entirely. Files that cannot be read are logged and dropped without failing
// the walk.
func (n *Normalizer) collectCodeFiles(ctx context.Context, root string) ([]core.CodeUnit, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isCodeExtension(filepath.Ext(d.Name())) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	units := make([]core.CodeUnit, len(paths))
	var mu sync.Mutex
	skipped := make(map[int]bool)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, rel := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				n.logger.WarnContext(ctx, "skipping unreadable file", "file", rel, "error", err)
				mu.Lock()
				skipped[i] = true
				mu.Unlock()
				return nil
			}
			units[i] = core.CodeUnit{Path: rel, Content: decodeText(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(skipped) == 0 {
		return units, nil
	}
	kept := make([]core.CodeUnit, 0, len(units)-len(skipped))
	for i, u := range units {
		if !skipped[i] {
			kept = append(kept, u)
		}
	}
	return kept, nil
}
