package githubapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParsePRURL extracts the owner, repository name and pull request number from a
// pull request URL such as https://github.com/owner/repo/pull/42. Trailing path
// segments, query strings and fragments after the number are ignored.
func ParsePRURL(raw string) (string, string, int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", 0, fmt.Errorf("pull request URL is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid pull request URL %q: %w", raw, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[2] != "pull" || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", 0, fmt.Errorf("invalid pull request URL %q, expected https://github.com/owner/repo/pull/NUMBER", raw)
	}

	number, err := strconv.Atoi(parts[3])
	if err != nil || number <= 0 {
		return "", "", 0, fmt.Errorf("invalid pull request number %q in URL %q", parts[3], raw)
	}

	return parts[0], parts[1], number, nil
}
