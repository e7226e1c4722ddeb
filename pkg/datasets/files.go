package datasets

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxSearchDepth bounds the recursive fallback so a misplaced dataset root
// cannot trigger an unbounded walk.
const maxSearchDepth = 6

// FindFile locates filename under root, trying each known subdirectory
// nesting first and falling back to a bounded case-insensitive recursive
// search. Returns "" when nothing matches. Dataset archives unpack with
// wildly different layouts, so the candidate list is data-driven per adapter.
func FindFile(root, filename string, nestings ...string) string {
	candidates := make([]string, 0, len(nestings)+1)
	candidates = append(candidates, filepath.Join(root, filename))
	for _, nest := range nestings {
		candidates = append(candidates, filepath.Join(root, nest, filename))
	}
	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate
		}
	}
	return searchFile(root, filename)
}

// FindGlob returns the first path under root matching any of the glob
// patterns, tried in order.
func FindGlob(root string, patterns ...string) string {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil || len(matches) == 0 {
			continue
		}
		return matches[0]
	}
	return ""
}

// GlobAll returns every path under root matching any pattern, deduplicated,
// in pattern order.
func GlobAll(root string, patterns ...string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				result = append(result, m)
			}
		}
	}
	return result
}

func searchFile(root, filename string) string {
	var found string
	lower := strings.ToLower(filename)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fs.SkipDir
		}
		if d.IsDir() {
			if depth(root, path) > maxSearchDepth {
				return fs.SkipDir
			}
			return nil
		}
		if strings.ToLower(d.Name()) == lower {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
