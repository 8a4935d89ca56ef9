/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"regexp"
	"strings"
)

// fenceOpen matches a code-fence opener with a language tag, e.g. ```python.
var fenceOpen = regexp.MustCompile("```[a-zA-Z0-9+_-]+")

// CleanMarkdown strips code-fence markers and surrounding whitespace from a
// model response. Models frequently wrap whole-file output in ```lang ...
// ``` even when asked for plain text.
func CleanMarkdown(raw string) string {
	out := fenceOpen.ReplaceAllString(raw, "")
	out = strings.ReplaceAll(out, "```", "")
	return strings.TrimSpace(out)
}
