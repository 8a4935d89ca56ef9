/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package analyzer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	raw := `[{"path":"pkg/x.py","line":3,"column":1,"message-id":"C0114","message":"Missing module docstring","symbol":"missing-module-docstring"}]`

	got := Parse(ctx, raw, root)
	want := []Issue{{
		FilePath:     filepath.Join(root, "pkg", "x.py"),
		DisplayPath:  "pkg/x.py",
		LineNumber:   3,
		ColumnNumber: 1,
		Code:         "C0114",
		Message:      "Missing module docstring",
		Symbol:       "missing-module-docstring",
	}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyOutput(t *testing.T) {
	if got := Parse(context.Background(), "  \n", t.TempDir()); len(got) != 0 {
		t.Fatalf("expected no issues, got %v", got)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	got := Parse(context.Background(), "************* Module x", t.TempDir())
	if len(got) != 1 {
		t.Fatalf("expected a single error record, got %d", len(got))
	}
	if got[0].Error == "" {
		t.Fatal("expected the record to carry an error")
	}
}

func TestParseDropsBadEntries(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	raw := `[
		{"line":1,"message-id":"C0114"},
		{"path":"../escape.py","line":1,"message-id":"C0114"},
		{"path":"ok.py","line":2,"column":4,"message-id":"C0301","message":"Line too long","symbol":"line-too-long"}
	]`

	got := Parse(ctx, raw, root)
	if len(got) != 1 {
		t.Fatalf("expected 1 retained issue, got %d: %v", len(got), got)
	}
	if got[0].DisplayPath != "ok.py" || got[0].Code != "C0301" {
		t.Fatalf("unexpected issue retained: %+v", got[0])
	}
}

func TestParseDefaultsLineAndColumn(t *testing.T) {
	got := Parse(context.Background(), `[{"path":"x.py","message-id":"C0114"}]`, t.TempDir())
	if len(got) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(got))
	}
	if got[0].LineNumber != 1 || got[0].ColumnNumber != 1 {
		t.Fatalf("expected line/column defaults of 1, got %d/%d", got[0].LineNumber, got[0].ColumnNumber)
	}
}
