/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package analyzer

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"chainguard.dev/gitpal/pathcheck"
	"github.com/chainguard-dev/clog"
)

// Issue is one linter finding tied to a file, line, and message ID. FilePath
// is absolute for backend processing; DisplayPath is relative to the
// repository root for the client. A non-empty Error marks a record that
// describes a parse failure rather than a finding.
type Issue struct {
	FilePath     string `json:"file_path,omitempty"`
	DisplayPath  string `json:"display_path,omitempty"`
	LineNumber   int    `json:"line_number,omitempty"`
	ColumnNumber int    `json:"column_number,omitempty"`
	Code         string `json:"code,omitempty"`
	Message      string `json:"message,omitempty"`
	Symbol       string `json:"symbol,omitempty"`
	Error        string `json:"error,omitempty"`
}

// pylintMessage mirrors one entry of pylint's JSON reporter.
type pylintMessage struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	MessageID string `json:"message-id"`
	Message   string `json:"message"`
	Symbol    string `json:"symbol"`
}

// Parse converts the raw pylint JSON report into Issues. It fails soft:
// unparsable output yields a single error record, entries without a path or
// with a path outside repoRoot are dropped with a warning. Empty output is a
// valid empty result.
func Parse(ctx context.Context, raw, repoRoot string) []Issue {
	log := clog.FromContext(ctx)

	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var messages []pylintMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		log.With("error", err).Warn("Linter output is not valid JSON")
		return []Issue{{Error: "invalid JSON from linter: " + err.Error()}}
	}

	absRoot, err := filepath.Abs(repoRoot)
	if err != nil {
		return []Issue{{Error: "resolving repository root: " + err.Error()}}
	}

	issues := make([]Issue, 0, len(messages))
	for _, m := range messages {
		if m.Path == "" {
			log.Warn("Dropping linter message without a path")
			continue
		}

		rel, ok := pathcheck.Resolve(m.Path, absRoot)
		if !ok {
			log.With("path", m.Path).Warn("Dropping linter message outside the repository")
			continue
		}

		line, column := m.Line, m.Column
		if line == 0 {
			line = 1
		}
		if column == 0 {
			column = 1
		}

		issues = append(issues, Issue{
			FilePath:     filepath.Join(absRoot, filepath.FromSlash(rel)),
			DisplayPath:  rel,
			LineNumber:   line,
			ColumnNumber: column,
			Code:         m.MessageID,
			Message:      m.Message,
			Symbol:       m.Symbol,
		})
	}

	return issues
}
