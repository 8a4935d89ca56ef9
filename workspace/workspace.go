/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package workspace manages ephemeral clones of a target repository: one
// checkout per request, written to, committed, pushed, and removed when the
// request ends.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

const (
	cloneDirPrefix = "gitpal-clone-"
	branchPrefix   = "gitpal-fixes-"

	botName  = "GitPal Bot"
	botEmail = "bot@gitpal.dev"
)

// ErrNoChanges indicates the working tree held nothing to commit. No branch
// is created in that case.
var ErrNoChanges = errors.New("no changes to commit")

// Fix is a client-approved full-file replacement. FilePath must be relative
// to the repository root.
type Fix struct {
	FilePath  string `json:"file_path"`
	FixedCode string `json:"fixed_code"`
}

// SkippedFix records one fix that could not be applied, with the reason.
type SkippedFix struct {
	FilePath string `json:"file_path"`
	Error    string `json:"error"`
}

// Workspace is one ephemeral checkout of a remote repository.
type Workspace struct {
	root string
	repo *git.Repository
	auth *githttp.BasicAuth
}

// Clone checks the repository out into a fresh temp directory. The token
// authenticates both the clone and any later push.
func Clone(ctx context.Context, repoURL, token string) (*Workspace, error) {
	dir, err := os.MkdirTemp("", cloneDirPrefix)
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}

	clog.FromContext(ctx).With("dir", dir).Infof("Cloning %s", repoURL)

	var auth *githttp.BasicAuth
	if token != "" {
		auth = &githttp.BasicAuth{
			Username: "unused-when-using-access-tokens",
			Password: token,
		}
	}

	opts := &git.CloneOptions{URL: repoURL}
	if auth != nil {
		opts.Auth = auth
	}
	repo, err := git.PlainClone(dir, false, opts)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("cloning repository: %w", err)
	}

	return &Workspace{root: dir, repo: repo, auth: auth}, nil
}

// Root returns the absolute path of the checkout.
func (w *Workspace) Root() string {
	return w.root
}

// Remove deletes the checkout. Best effort; safe to defer on every path.
func (w *Workspace) Remove() {
	os.RemoveAll(w.root)
}

// ApplyFixes writes each fix into the checkout and reports how many files
// were written. Paths must be repository-root-relative; absolute paths and
// traversal outside the root are rejected rather than cleaned up. A single
// file's failure is recorded and skipped, not fatal to the batch.
func (w *Workspace) ApplyFixes(ctx context.Context, fixes []Fix) (int, []SkippedFix) {
	log := clog.FromContext(ctx)

	written := 0
	var skipped []SkippedFix
	for _, fx := range fixes {
		rel, err := w.relPath(fx.FilePath)
		if err != nil {
			log.With("path", fx.FilePath).Warnf("Skipping fix: %v", err)
			skipped = append(skipped, SkippedFix{FilePath: fx.FilePath, Error: err.Error()})
			continue
		}

		abs := filepath.Join(w.root, rel)
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			log.With("path", fx.FilePath).Warnf("Skipping fix: %v", err)
			skipped = append(skipped, SkippedFix{FilePath: fx.FilePath, Error: err.Error()})
			continue
		}
		if err := os.WriteFile(abs, []byte(fx.FixedCode), 0o644); err != nil {
			log.With("path", fx.FilePath).Warnf("Skipping fix: %v", err)
			skipped = append(skipped, SkippedFix{FilePath: fx.FilePath, Error: err.Error()})
			continue
		}
		written++
	}

	return written, skipped
}

// relPath enforces the relative-path contract for client-submitted fixes.
func (w *Workspace) relPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is empty")
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("path %q is not repository-relative", path)
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the repository", path)
	}
	return clean, nil
}

// CommitAndPush creates branch at HEAD, stages everything, commits under
// the bot identity naming files in the message, and pushes the branch to
// origin. It fails with ErrNoChanges before touching any ref when the
// working tree is clean. Each stage's failure is labeled so callers can
// tell which step broke.
func (w *Workspace) CommitAndPush(ctx context.Context, branch string, files int) error {
	log := clog.FromContext(ctx)

	worktree, err := w.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("getting worktree status: %w", err)
	}
	if status.IsClean() {
		return ErrNoChanges
	}

	ref := plumbing.NewBranchReferenceName(branch)
	if err := worktree.Checkout(&git.CheckoutOptions{
		Branch: ref,
		Create: true,
		Keep:   true,
	}); err != nil {
		return fmt.Errorf("branch: creating %s: %w", branch, err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("add: staging changes: %w", err)
	}

	message := fmt.Sprintf("Apply %d code fixes via GitPal", files)
	if _, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  botName,
			Email: botEmail,
			When:  time.Now().UTC(),
		},
	}); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	refSpec := gitconfig.RefSpec(fmt.Sprintf("%s:%s", ref, ref))
	log.Infof("Pushing %s", refSpec)
	pushOpts := &git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{refSpec},
	}
	if w.auth != nil {
		pushOpts.Auth = w.auth
	}
	if err := w.repo.Push(pushOpts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push: %w", err)
	}

	return nil
}

// BranchName derives the per-request branch name from a UTC timestamp.
func BranchName(now time.Time) string {
	return branchPrefix + now.UTC().Format("20060102-150405")
}
