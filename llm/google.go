/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type googleClient struct {
	client *genai.Client
	model  string
}

// NewGoogle creates a Gemini-backed client using the Gemini API with an API
// key.
func NewGoogle(ctx context.Context, apiKey, model string) (Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Google AI client: %w", err)
	}

	return &googleClient{client: client, model: model}, nil
}

func (g *googleClient) Generate(ctx context.Context, instruction string) (string, error) {
	clog.FromContext(ctx).With("model", g.model).Debug("Calling Gemini")

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(instruction), nil)
	if err != nil {
		return "", fmt.Errorf("generating content with model %q: %w", g.model, err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	return flattenContent(resp.Candidates[0].Content), nil
}

// flattenContent normalizes the response shapes the API can produce (a
// single text part, or a list of parts each carrying text) into one string.
func flattenContent(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
