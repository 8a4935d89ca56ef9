/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package pathcheck validates linter- and client-supplied paths against a
// repository root. Anything that resolves outside the root is reported as
// out of bounds rather than raising an error, so callers can degrade to
// skipping the offending record.
package pathcheck

import (
	"path/filepath"
	"strings"
)

// Resolve normalizes candidate against root and reports whether it stays
// inside the root. Relative candidates are interpreted relative to the root.
// On success it returns the root-relative path. Traversal via ".." and
// symlink escapes are rejected.
func Resolve(candidate, root string) (string, bool) {
	if candidate == "" {
		return "", false
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absRoot = resolveSymlinks(absRoot)

	abs := filepath.FromSlash(candidate)
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(absRoot, abs)
	}
	abs = resolveSymlinks(filepath.Clean(abs))

	rel, err := filepath.Rel(absRoot, abs)
	if err != nil {
		return "", false
	}
	if escapes(rel) {
		return "", false
	}

	return filepath.ToSlash(rel), true
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// resolveSymlinks evaluates symlinks on the deepest existing ancestor of
// path, so a file that does not exist yet inside a symlinked directory is
// still resolved against the link target.
func resolveSymlinks(path string) string {
	remainder := ""
	for current := path; ; {
		if resolved, err := filepath.EvalSymlinks(current); err == nil {
			return filepath.Join(resolved, remainder)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return path
		}
		remainder = filepath.Join(filepath.Base(current), remainder)
		current = parent
	}
}
