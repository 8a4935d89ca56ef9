/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v84/github"
)

// pointClientAt routes all API calls to a local server for the duration
// of the test.
func pointClientAt(t *testing.T, srv *httptest.Server) {
	t.Helper()

	orig := newClient
	t.Cleanup(func() { newClient = orig })
	newClient = func(token string) *github.Client {
		c := github.NewClient(nil).WithAuthToken(token)
		base, err := url.Parse(srv.URL + "/")
		if err != nil {
			t.Fatalf("url.Parse: %v", err)
		}
		c.BaseURL = base
		return c
	}
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		url         string
		owner, repo string
		wantErr     bool
	}{
		{url: "https://github.com/acme/widgets", owner: "acme", repo: "widgets"},
		{url: "https://github.com/acme/widgets.git", owner: "acme", repo: "widgets"},
		{url: "git@github.com:acme/widgets.git", owner: "acme", repo: "widgets"},
		{url: "git@github.com:acme/widgets", owner: "acme", repo: "widgets"},
		{url: "https://github.com/acme/widgets/", owner: "acme", repo: "widgets"},
		{url: "https://gitlab.com/acme/widgets", wantErr: true},
		{url: "https://github.com/acme", wantErr: true},
		{url: "https://github.com//widgets", wantErr: true},
		{url: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tc.url)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Fatalf("err = %v, want ErrInvalidURL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepoURL: %v", err)
			}
			if owner != tc.owner || repo != tc.repo {
				t.Fatalf("got %s/%s, want %s/%s", owner, repo, tc.owner, tc.repo)
			}
		})
	}
}

func TestDefaultBranch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widgets" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "widgets", "default_branch": "develop"}`))
	}))
	defer srv.Close()
	pointClientAt(t, srv)

	got := DefaultBranch(context.Background(), "https://github.com/acme/widgets", "tok")
	if got.FellBack || got.Branch != "develop" {
		t.Fatalf("DefaultBranch = %+v, want develop without fallback", got)
	}
}

func TestDefaultBranchFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	pointClientAt(t, srv)

	tests := []string{
		"https://github.com/acme/widgets", // 404 from the API
		"not-a-github-url",
	}
	for _, repoURL := range tests {
		got := DefaultBranch(context.Background(), repoURL, "tok")
		if !got.FellBack || got.Branch != "main" {
			t.Fatalf("DefaultBranch(%q) = %+v, want main fallback", repoURL, got)
		}
	}
}

func TestCreatePullRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/repos/acme/widgets/pulls" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"number": 7, "html_url": "https://github.com/acme/widgets/pull/7"}`))
	}))
	defer srv.Close()
	pointClientAt(t, srv)

	got := CreatePullRequest(context.Background(), "https://github.com/acme/widgets", "tok",
		"gitpal-fixes-20260830-123456", "main", "title", "body")
	if !got.Success {
		t.Fatalf("CreatePullRequest failed: %s", got.Message)
	}
	if got.Number != 7 || got.URL != "https://github.com/acme/widgets/pull/7" {
		t.Fatalf("CreatePullRequest = %+v", got)
	}
}

func TestCreatePullRequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "Validation Failed"}`))
	}))
	defer srv.Close()
	pointClientAt(t, srv)

	got := CreatePullRequest(context.Background(), "https://github.com/acme/widgets", "tok",
		"branch", "main", "title", "body")
	if got.Success {
		t.Fatal("expected failure result")
	}
	if got.Message == "" {
		t.Fatal("failure result carries no message")
	}
}

func TestCreatePullRequestBadURL(t *testing.T) {
	got := CreatePullRequest(context.Background(), "nope", "tok", "branch", "main", "t", "b")
	if got.Success || got.Message == "" {
		t.Fatalf("CreatePullRequest = %+v, want failure with message", got)
	}
}

func TestListRepos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/repos" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "widgets", "full_name": "acme/widgets", "private": false,
			 "html_url": "https://github.com/acme/widgets", "default_branch": "main"},
			{"name": "secret", "full_name": "acme/secret", "private": true,
			 "html_url": "https://github.com/acme/secret", "default_branch": "master"}
		]`))
	}))
	defer srv.Close()
	pointClientAt(t, srv)

	repos, err := ListRepos(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListRepos: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("got %d repos, want 2", len(repos))
	}
	if repos[0].FullName != "acme/widgets" || repos[1].Private != true {
		t.Fatalf("unexpected repos: %+v", repos)
	}
}

func TestListReposError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	pointClientAt(t, srv)

	if _, err := ListRepos(context.Background(), "bad"); err == nil {
		t.Fatal("expected error from unauthorized listing")
	}
}
