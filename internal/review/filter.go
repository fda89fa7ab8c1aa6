package review

import (
	"strings"

	"github.com/pr-bridge/prbridge/internal/githubapi"
)

// Filter modes selecting which threads a report includes.
const (
	FilterAll        = "all"
	FilterUnresolved = "unresolved"
)

// ValidFilter reports whether mode is a known thread filter.
func ValidFilter(mode string) bool {
	return mode == FilterAll || mode == FilterUnresolved
}

// FilterThreads returns the threads matching the filter mode. FilterUnresolved
// keeps only threads without replies; any other mode keeps everything.
func FilterThreads(threads []Thread, mode string) []Thread {
	if mode != FilterUnresolved {
		return threads
	}

	var out []Thread
	for _, t := range threads {
		if !t.Resolved() {
			out = append(out, t)
		}
	}
	return out
}

// ExcludeAuthors drops inline comments whose author login matches one of the
// given logins, typically to silence bot accounts. Matching is case-insensitive.
func ExcludeAuthors(comments []githubapi.ReviewComment, logins []string) []githubapi.ReviewComment {
	excluded := loginSet(logins)
	if len(excluded) == 0 {
		return comments
	}

	var out []githubapi.ReviewComment
	for _, c := range comments {
		if _, ok := excluded[strings.ToLower(c.Author)]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ExcludeGeneralAuthors drops general PR comments whose author login matches
// one of the given logins. Matching is case-insensitive.
func ExcludeGeneralAuthors(comments []githubapi.IssueComment, logins []string) []githubapi.IssueComment {
	excluded := loginSet(logins)
	if len(excluded) == 0 {
		return comments
	}

	var out []githubapi.IssueComment
	for _, c := range comments {
		if _, ok := excluded[strings.ToLower(c.Author)]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// loginSet normalizes logins into a lowercase lookup set, skipping blanks.
func loginSet(logins []string) map[string]struct{} {
	set := make(map[string]struct{}, len(logins))
	for _, login := range logins {
		login = strings.ToLower(strings.TrimSpace(login))
		if login == "" {
			continue
		}
		set[login] = struct{}{}
	}
	return set
}
