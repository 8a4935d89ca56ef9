/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gin-gonic/gin"

	"chainguard.dev/gitpal/analyzer"
	"chainguard.dev/gitpal/githubapi"
	"chainguard.dev/gitpal/workspace"
)

// analyze clones the repository, lints it, and returns the findings.
// The workspace is kept on success so preview and generate-fix requests
// can read files out of it; it is removed when anything fails.
func (s *Server) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()

	ws, err := workspace.Clone(ctx, req.RepoURL, req.Token)
	if err != nil {
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Analysis failed: %v", err))
		return
	}

	raw, err := s.runner.Run(ctx, ws.Root())
	if err != nil {
		ws.Remove()
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Analysis failed: %v", err))
		return
	}

	issues := analyzer.Parse(ctx, raw, ws.Root())
	valid := make([]analyzer.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Error != "" {
			clog.FromContext(ctx).Warnf("Dropping malformed finding: %s", issue.Error)
			continue
		}
		valid = append(valid, issue)
	}

	message := "Analysis completed."
	if len(valid) == 0 {
		message = "Analysis completed - no issues found."
	}
	c.JSON(http.StatusOK, AnalyzeResponse{
		Success:       true,
		Message:       message,
		SmellPatterns: valid,
		TotalIssues:   len(valid),
		RepoPath:      ws.Root(),
	})
}

// previewFix generates a fix without touching the file.
func (s *Server) previewFix(c *gin.Context) {
	var req FixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	original, err := os.ReadFile(req.FilePath)
	if err != nil {
		respondError(c, http.StatusNotFound, "File not found")
		return
	}

	preview, err := s.gen.Fix(c.Request.Context(), req.FilePath, req.SmellCode, req.LineNumber, false)
	if err != nil {
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to generate fix: %v", err))
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Success:     true,
		Message:     "Preview generated.",
		FilePath:    req.FilePath,
		Original:    string(original),
		PreviewCode: preview,
	})
}

// generateFix generates a fix and writes it into the workspace file.
func (s *Server) generateFix(c *gin.Context) {
	var req FixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := os.Stat(req.FilePath); err != nil {
		respondError(c, http.StatusNotFound, "File not found")
		return
	}

	fixed, err := s.gen.Fix(c.Request.Context(), req.FilePath, req.SmellCode, req.LineNumber, true)
	if err != nil {
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to generate fix: %v", err))
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Success:  true,
		Message:  "Fix applied.",
		FilePath: req.FilePath,
		Fix:      fixed,
	})
}

// fixAll clones, lints, and tries to fix every finding in one pass. The
// workspace is always removed: the response carries the fixed content,
// nothing refers back into the clone.
func (s *Server) fixAll(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()

	ws, err := workspace.Clone(ctx, req.RepoURL, req.Token)
	if err != nil {
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Auto-fix failed: %v", err))
		return
	}
	defer ws.Remove()

	raw, err := s.runner.Run(ctx, ws.Root())
	if err != nil {
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Auto-fix failed: %v", err))
		return
	}

	fixed := []FixedIssue{}
	skipped := []SkippedIssue{}
	for _, issue := range analyzer.Parse(ctx, raw, ws.Root()) {
		if issue.Error != "" {
			continue
		}
		code, err := s.gen.Fix(ctx, issue.FilePath, issue.Code, issue.LineNumber, true)
		if err != nil {
			skipped = append(skipped, SkippedIssue{Issue: issue, Reason: err.Error()})
			continue
		}
		fixed = append(fixed, FixedIssue{Issue: issue, Fix: code})
	}

	c.JSON(http.StatusOK, FixAllResponse{
		Success:       true,
		Message:       "Auto-fix complete.",
		FixedIssues:   fixed,
		SkippedIssues: skipped,
	})
}

func (s *Server) getFileContent(c *gin.Context) {
	var req FileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	content, err := os.ReadFile(req.FilePath)
	if err != nil {
		respondError(c, http.StatusNotFound, "File not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": string(content)})
}

// commitFixes writes the approved fixes into a fresh clone, pushes them
// on a new branch, and optionally opens a pull request. A PR failure
// after a successful push is reported in the message rather than
// failing the request.
func (s *Server) commitFixes(c *gin.Context) {
	var req CommitFixesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Fixes) == 0 {
		respondError(c, http.StatusBadRequest, "No fixes provided")
		return
	}
	ctx := c.Request.Context()

	base := req.BaseBranch
	if base == "" {
		base = githubapi.DefaultBranch(ctx, req.RepoURL, req.Token).Branch
	}

	ws, err := workspace.Clone(ctx, req.RepoURL, req.Token)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Failed to clone repository: %v", err))
		return
	}
	defer ws.Remove()

	written, skipped := ws.ApplyFixes(ctx, req.Fixes)
	if written == 0 {
		respondError(c, http.StatusBadRequest, "No files could be written")
		return
	}

	branch := workspace.BranchName(time.Now())
	if err := ws.CommitAndPush(ctx, branch, written); err != nil {
		if errors.Is(err, workspace.ErrNoChanges) {
			respondError(c, http.StatusBadRequest, "No changes detected in repository")
			return
		}
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to commit fixes: %v", err))
		return
	}

	resp := CommitFixesResponse{
		Success:       true,
		Branch:        branch,
		FilesChanged:  written,
		Message:       fmt.Sprintf("Successfully committed %d fixes and pushed to branch %s", written, branch),
		SkippedIssues: skipped,
	}

	if req.CreatePR {
		title := req.PRTitle
		if title == "" {
			title = fmt.Sprintf("GitPal: Fix %d code smell%s", written, plural(written))
		}
		body := req.PRBody
		if body == "" {
			body = defaultPRBody(written)
		}
		pr := githubapi.CreatePullRequest(ctx, req.RepoURL, req.Token, branch, base, title, body)
		if pr.Success {
			resp.PRURL = pr.URL
			resp.PRNumber = pr.Number
			resp.Message += fmt.Sprintf(" and created pull request #%d", pr.Number)
		} else {
			resp.Message += fmt.Sprintf(" but failed to create PR: %s", pr.Message)
		}
	}

	c.JSON(http.StatusOK, resp)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func defaultPRBody(files int) string {
	return fmt.Sprintf(`## GitPal Automated Code Fixes

This pull request contains automated fixes for %d code smell%s detected by GitPal.

### Review Notes:
- All fixes were generated using AI-powered analysis
- Please review the changes before merging
- Consider running your test suite to ensure nothing is broken
`, files, plural(files))
}

func (s *Server) getRepoInfo(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()

	owner, repo, err := githubapi.ParseRepoURL(req.RepoURL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	branch := githubapi.DefaultBranch(ctx, req.RepoURL, req.Token)
	c.JSON(http.StatusOK, RepoInfoResponse{
		Success:       true,
		Owner:         owner,
		Repo:          repo,
		DefaultBranch: branch.Branch,
		UsedFallback:  branch.FellBack,
	})
}

func (s *Server) login(c *gin.Context) {
	if s.oauth == nil {
		respondError(c, http.StatusInternalServerError, "GitHub OAuth credentials are not set.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authorization_url": s.oauth.AuthorizationURL()})
}

func (s *Server) callback(c *gin.Context) {
	if s.oauth == nil {
		respondError(c, http.StatusInternalServerError, "GitHub OAuth credentials are not set.")
		return
	}
	code := c.Query("code")
	if code == "" {
		respondError(c, http.StatusBadRequest, "Missing code parameter")
		return
	}

	tok, err := s.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		respondError(c, http.StatusBadGateway, "Failed to retrieve access token from GitHub.")
		return
	}
	c.JSON(http.StatusOK, tok)
}

func (s *Server) listRepos(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondError(c, http.StatusBadRequest, "Missing token parameter")
		return
	}

	repos, err := githubapi.ListRepos(c.Request.Context(), token)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, repos)
}
