package cliapp

import (
	"path/filepath"
	"strings"
)

// sanitizePath reduces a path outside the current working directory to
// its filename only, so an error message or report never leaks a
// canonical absolute path from a failed access.
func sanitizePath(cwd, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return rel
}
