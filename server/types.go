/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"chainguard.dev/gitpal/analyzer"
	"chainguard.dev/gitpal/workspace"
)

// AnalyzeRequest names a repository and the token that can read it.
type AnalyzeRequest struct {
	RepoURL string `json:"repo_url" binding:"required"`
	Token   string `json:"token" binding:"required"`
}

// FixRequest targets one finding. FilePath is the absolute workspace
// path that an earlier analyze call handed out.
type FixRequest struct {
	FilePath   string `json:"file_path" binding:"required"`
	SmellCode  string `json:"smell_code" binding:"required"`
	LineNumber int    `json:"line_number"`
}

// FileRequest asks for the content of one workspace file.
type FileRequest struct {
	FilePath string `json:"file_path" binding:"required"`
}

// CommitFixesRequest carries the client-approved fixes to commit. Fix
// paths are repository-root-relative.
type CommitFixesRequest struct {
	RepoURL    string          `json:"repo_url" binding:"required"`
	Token      string          `json:"token" binding:"required"`
	Fixes      []workspace.Fix `json:"fixes"`
	CreatePR   bool            `json:"create_pr"`
	PRTitle    string          `json:"pr_title"`
	PRBody     string          `json:"pr_body"`
	BaseBranch string          `json:"base_branch"`
}

// AnalyzeResponse lists the findings of one analysis run plus the
// workspace path later fix requests refer back into.
type AnalyzeResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	SmellPatterns []analyzer.Issue `json:"smell_patterns"`
	TotalIssues   int              `json:"total_issues"`
	RepoPath      string           `json:"repo_path"`
}

// PreviewResponse pairs a file's current content with the proposed fix.
type PreviewResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	FilePath    string `json:"file_path"`
	Original    string `json:"original"`
	PreviewCode string `json:"preview_code"`
}

// GenerateResponse reports a fix written back into the workspace.
type GenerateResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
	Fix      string `json:"fix"`
}

// FixedIssue is a finding the auto-fix pass repaired.
type FixedIssue struct {
	analyzer.Issue
	Fix string `json:"fix"`
}

// SkippedIssue is a finding the auto-fix pass could not repair.
type SkippedIssue struct {
	analyzer.Issue
	Reason string `json:"error"`
}

// FixAllResponse summarizes an auto-fix pass over a whole repository.
type FixAllResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	FixedIssues   []FixedIssue   `json:"fixed_issues"`
	SkippedIssues []SkippedIssue `json:"skipped_issues"`
}

// CommitFixesResponse reports the branch pushed and, when requested,
// the pull request outcome folded into Message.
type CommitFixesResponse struct {
	Success       bool                   `json:"success"`
	Branch        string                 `json:"branch"`
	FilesChanged  int                    `json:"files_changed"`
	Message       string                 `json:"message"`
	PRURL         string                 `json:"pr_url,omitempty"`
	PRNumber      int                    `json:"pr_number,omitempty"`
	SkippedIssues []workspace.SkippedFix `json:"skipped_issues,omitempty"`
}

// RepoInfoResponse names a repository and its default branch.
type RepoInfoResponse struct {
	Success       bool   `json:"success"`
	Owner         string `json:"owner"`
	Repo          string `json:"repo"`
	DefaultBranch string `json:"default_branch"`
	UsedFallback  bool   `json:"used_fallback"`
}
