/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openaiClient struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI chat-completion backed client.
func NewOpenAI(apiKey, model string) (Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	return &openaiClient{client: openai.NewClient(apiKey), model: model}, nil
}

func (o *openaiClient) Generate(ctx context.Context, instruction string) (string, error) {
	clog.FromContext(ctx).With("model", o.model).Debug("Calling OpenAI")

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: instruction},
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion with model %q: %w", o.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}
