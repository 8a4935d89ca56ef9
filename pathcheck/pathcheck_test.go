/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pathcheck

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolve(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name      string
		candidate string
		wantRel   string
		wantOK    bool
	}{{
		name:      "relative inside root",
		candidate: "pkg/x.py",
		wantRel:   "pkg/x.py",
		wantOK:    true,
	}, {
		name:      "absolute inside root",
		candidate: filepath.Join(root, "a", "b.py"),
		wantRel:   "a/b.py",
		wantOK:    true,
	}, {
		name:      "root itself",
		candidate: root,
		wantRel:   ".",
		wantOK:    true,
	}, {
		name:      "dot-dot escape",
		candidate: "../outside.py",
		wantOK:    false,
	}, {
		name:      "nested dot-dot escape",
		candidate: "pkg/../../outside.py",
		wantOK:    false,
	}, {
		name:      "absolute outside root",
		candidate: filepath.Join(os.TempDir(), "unrelated", "x.py"),
		wantOK:    false,
	}, {
		name:      "empty candidate",
		candidate: "",
		wantOK:    false,
	}, {
		name:      "dot-dot that returns inside",
		candidate: "pkg/../x.py",
		wantRel:   "x.py",
		wantOK:    true,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rel, ok := Resolve(tc.candidate, root)
			if ok != tc.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tc.candidate, ok, tc.wantOK)
			}
			if ok && rel != tc.wantRel {
				t.Fatalf("Resolve(%q) rel = %q, want %q", tc.candidate, rel, tc.wantRel)
			}
		})
	}
}

func TestResolveSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevation on windows")
	}

	outside := t.TempDir()
	root := t.TempDir()

	link := filepath.Join(root, "escape")
	if err := os.Symlink(outside, link); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	if _, ok := Resolve("escape/x.py", root); ok {
		t.Fatal("expected symlink escape to be out of bounds")
	}
}
