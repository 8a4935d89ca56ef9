/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package llm provides a minimal text-generation client over the supported
// model providers. Each provider makes a single blocking call per request;
// there is no retry, streaming, or tool use at this layer.
package llm

import "context"

// Client turns one natural-language instruction into one text response.
type Client interface {
	Generate(ctx context.Context, instruction string) (string, error)
}
