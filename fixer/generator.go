/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package fixer turns linter findings into full-file replacement fixes by
// instructing a model, with a bounded cache keyed by (file, code, line).
package fixer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"chainguard.dev/gitpal/llm"
	"github.com/chainguard-dev/clog"
)

var (
	// ErrUnsupportedSmell is returned for codes outside the closed
	// vocabulary. No model call is made in that case.
	ErrUnsupportedSmell = errors.New("unsupported smell code")

	// ErrEmptyFix is returned when the model response is empty after
	// cleaning. Nothing is cached or written.
	ErrEmptyFix = errors.New("model returned an empty fix")
)

// Generator produces fixes for individual linter findings.
type Generator struct {
	client llm.Client
	cache  *Cache
}

// NewGenerator wires a model client to a fix cache. The cache is passed in
// rather than owned so the process can size and share it explicitly.
func NewGenerator(client llm.Client, cache *Cache) (*Generator, error) {
	if client == nil {
		return nil, errors.New("llm client cannot be nil")
	}
	if cache == nil {
		return nil, errors.New("cache cannot be nil")
	}
	return &Generator{client: client, cache: cache}, nil
}

// Fix generates replacement content for filePath addressing the given smell
// code at line. When persist is true the file is overwritten with the
// result. A cache hit returns the previously generated text without calling
// the model.
func (g *Generator) Fix(ctx context.Context, filePath, smellCode string, line int, persist bool) (string, error) {
	log := clog.FromContext(ctx).With("file", filePath).With("code", smellCode).With("line", line)

	key := Key{FilePath: filePath, SmellCode: smellCode, LineNumber: line}
	if fixed, ok := g.cache.Get(key); ok {
		cacheHits.Inc()
		log.Debug("Fix served from cache")
		return fixed, nil
	}

	kind, ok := Classify(smellCode)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSmell, smellCode)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filePath, err)
	}

	llmCalls.Inc()
	raw, err := g.client.Generate(ctx, instruction(kind, smellCode, string(content)))
	if err != nil {
		return "", fmt.Errorf("generating fix: %w", err)
	}

	fixed := llm.CleanMarkdown(raw)
	if fixed == "" {
		emptyFixes.Inc()
		return "", ErrEmptyFix
	}

	if persist {
		if err := os.WriteFile(filePath, []byte(fixed), 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", filePath, err)
		}
		log.Info("Fix written")
	} else {
		log.Info("Fix previewed")
	}

	g.cache.Set(key, fixed)
	return fixed, nil
}
