package github

import (
	"fmt"
	"strings"
)

// ParseRepoURL accepts the forms users actually paste: full https URLs with
// or without .git, ssh remotes, and bare "owner/repo".
func ParseRepoURL(raw string) (owner, repo string, err error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "/")

	switch {
	case strings.HasPrefix(s, "git@github.com:"):
		s = strings.TrimPrefix(s, "git@github.com:")
	case strings.Contains(s, "github.com/"):
		_, after, ok := strings.Cut(s, "github.com/")
		if !ok {
			return "", "", fmt.Errorf("unrecognized repo url %q", raw)
		}
		s = after
	}

	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("unrecognized repo url %q", raw)
	}

	return parts[0], parts[1], nil
}
