/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package analyzer runs pylint against a cloned repository and turns its
// JSON report into issue records with repository-relative paths.
package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/chainguard-dev/clog"
)

// enabledChecks is the closed set of message IDs the fixer understands.
// Keep this in sync with fixer.Classify.
var enabledChecks = []string{
	"C0114", "C0115", "C0301", "C0303", "C0411", "C0412", "C0413",
	"C0414", "C0415", "C0416", "C0417", "D0123", "E0401",
	"E1101", "E1102", "E1103", "E1104", "E1105", "E1106",
	"E1120", "E1121", "E1122", "E1123",
}

// ignoredDirs are directory names pylint should never descend into.
var ignoredDirs = []string{
	".git", "node_modules", "__pycache__", ".vscode", ".idea", "venv", "env",
}

// pylint folds its findings into the exit code as a bitmask. Bits below
// usageError only indicate that messages were emitted, which is the normal
// outcome of a scan that found issues.
const usageErrorBit = 32

// Runner invokes the external linter. The zero value uses "pylint" from
// PATH.
type Runner struct {
	Binary string
}

func (r *Runner) binary() string {
	if r.Binary != "" {
		return r.Binary
	}
	return "pylint"
}

// Run lints repoRoot recursively and returns the raw JSON report. The
// command runs with the repository root as its working directory so that
// emitted paths resolve under it. Empty output is a valid no-issues result.
func (r *Runner) Run(ctx context.Context, repoRoot string) (string, error) {
	info, err := os.Stat(repoRoot)
	if err != nil {
		return "", fmt.Errorf("checking repository root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("repository root %s is not a directory", repoRoot)
	}

	args := []string{
		".",
		"--output-format=json",
		"--disable=all",
		"--enable=" + strings.Join(enabledChecks, ","),
		"--ignore=" + strings.Join(ignoredDirs, ","),
		"--recursive=y",
	}

	clog.FromContext(ctx).With("root", repoRoot).Infof("Running %s", r.binary())

	cmd := exec.CommandContext(ctx, r.binary(), args...)
	cmd.Dir = repoRoot

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 && exitErr.ExitCode() < usageErrorBit {
			// Findings were emitted; the report on stdout is the result.
			return stdout.String(), nil
		}
		return "", fmt.Errorf("running %s: %w (stderr: %s)", r.binary(), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
