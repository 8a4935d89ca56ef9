/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubapi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidURL reports a repository URL that names no GitHub owner/repo pair.
var ErrInvalidURL = errors.New("invalid GitHub repository URL")

// ParseRepoURL extracts the owner and repository name from an HTTPS or SSH
// GitHub URL. A trailing ".git" suffix is tolerated in both forms.
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	var rest string
	switch {
	case strings.HasPrefix(repoURL, "https://github.com/"):
		rest = strings.TrimPrefix(repoURL, "https://github.com/")
	case strings.HasPrefix(repoURL, "http://github.com/"):
		rest = strings.TrimPrefix(repoURL, "http://github.com/")
	case strings.HasPrefix(repoURL, "git@github.com:"):
		rest = strings.TrimPrefix(repoURL, "git@github.com:")
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURL, repoURL)
	}

	rest = strings.TrimSuffix(rest, ".git")
	rest = strings.TrimSuffix(rest, "/")

	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURL, repoURL)
	}
	return parts[0], parts[1], nil
}
