package livereload

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes skips hidden files and directories, editor leftovers and
// dependency trees.
var DefaultExcludes = []string{
	".*",
	"*~",
	"*.swp",
	"*.tmp",
	"node_modules",
}

// excluded reports whether path matches any exclude pattern, either as a
// path relative to the watched root or by its base name.
func (w *Watcher) excluded(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	return matchesAny(filepath.ToSlash(rel), w.exclude)
}

func matchesAny(relPath string, patterns []string) bool {
	base := filepath.Base(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
