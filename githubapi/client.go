/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubapi talks to the GitHub REST API on behalf of a user
// token: repository metadata, pull requests, and the OAuth login flow.
package githubapi

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
)

// newClient builds a REST client for the given user token. Tests swap
// this out to point at a local server.
var newClient = func(token string) *github.Client {
	return github.NewClient(nil).WithAuthToken(token)
}

// BranchResult carries a repository's default branch, flagging whether
// the value is a fallback because the lookup failed.
type BranchResult struct {
	Branch   string
	FellBack bool
}

// DefaultBranch looks up the repository's default branch. It never
// fails: when the URL is bad, the repository is unreachable, or the
// response omits the branch, it falls back to "main" and says so.
func DefaultBranch(ctx context.Context, repoURL, token string) BranchResult {
	log := clog.FromContext(ctx)

	owner, name, err := ParseRepoURL(repoURL)
	if err != nil {
		log.Warnf("Falling back to main: %v", err)
		return BranchResult{Branch: "main", FellBack: true}
	}

	repo, _, err := newClient(token).Repositories.Get(ctx, owner, name)
	if err != nil {
		log.Warnf("Falling back to main: fetching %s/%s: %v", owner, name, err)
		return BranchResult{Branch: "main", FellBack: true}
	}
	if repo.GetDefaultBranch() == "" {
		return BranchResult{Branch: "main", FellBack: true}
	}
	return BranchResult{Branch: repo.GetDefaultBranch()}
}

// PRResult reports the outcome of a pull request attempt. Failure is a
// value, not an error, so a push that succeeded can still be reported to
// the caller alongside a PR that did not.
type PRResult struct {
	Success bool
	URL     string
	Number  int
	Message string
}

// CreatePullRequest opens a PR from head into base. Like DefaultBranch
// it never returns an error; the result says what happened.
func CreatePullRequest(ctx context.Context, repoURL, token, head, base, title, body string) PRResult {
	log := clog.FromContext(ctx)

	owner, name, err := ParseRepoURL(repoURL)
	if err != nil {
		return PRResult{Message: err.Error()}
	}

	pr, _, err := newClient(token).PullRequests.Create(ctx, owner, name, &github.NewPullRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
		Head:  github.Ptr(head),
		Base:  github.Ptr(base),
	})
	if err != nil {
		log.Warnf("Creating pull request on %s/%s: %v", owner, name, err)
		return PRResult{Message: fmt.Sprintf("creating pull request: %v", err)}
	}

	log.Infof("Opened PR #%d on %s/%s", pr.GetNumber(), owner, name)
	return PRResult{
		Success: true,
		URL:     pr.GetHTMLURL(),
		Number:  pr.GetNumber(),
	}
}

// Repo is the slice of repository metadata the UI needs to offer a
// picker over the user's repositories.
type Repo struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"html_url"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
}

// ListRepos returns the authenticated user's repositories, most recently
// updated first.
func ListRepos(ctx context.Context, token string) ([]Repo, error) {
	repos, _, err := newClient(token).Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	out := make([]Repo, 0, len(repos))
	for _, r := range repos {
		out = append(out, Repo{
			Name:          r.GetName(),
			FullName:      r.GetFullName(),
			Private:       r.GetPrivate(),
			HTMLURL:       r.GetHTMLURL(),
			Description:   r.GetDescription(),
			DefaultBranch: r.GetDefaultBranch(),
		})
	}
	return out, nil
}
