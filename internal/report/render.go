// Package report renders fetched pull request review data into a Markdown
// document laid out for AI assistant consumption: dense, predictable, with
// replies nested under their parent comment and diff context inline.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pr-bridge/prbridge/internal/githubapi"
	"github.com/pr-bridge/prbridge/internal/review"
)

// defaultDiffContextLines is how many trailing diff hunk lines each thread shows.
const defaultDiffContextLines = 6

// reviewBodyLimit caps quoted review summary bodies, in runes.
const reviewBodyLimit = 200

// Options controls document rendering.
type Options struct {
	// Filter is the thread filter mode recorded in the document header.
	Filter string
	// DiffContextLines overrides how many trailing diff hunk lines are shown.
	// Zero selects the default of 6.
	DiffContextLines int
}

// Render builds the full Markdown document from pull request metadata, the
// already filtered inline comment threads, general comments and review
// summaries. Passing no general comments omits that section entirely.
func Render(pr *githubapi.PullRequest, threads []review.Thread, issueComments []githubapi.IssueComment, reviews []githubapi.Review, opts Options) string {
	contextLines := opts.DiffContextLines
	if contextLines <= 0 {
		contextLines = defaultDiffContextLines
	}

	lines := []string{
		fmt.Sprintf("# PR #%d: %s", pr.Number, pr.Title),
		"",
		fmt.Sprintf("- **Repository:** %s/%s", pr.Owner, pr.Repo),
		fmt.Sprintf("- **Author:** @%s", pr.Author),
		fmt.Sprintf("- **State:** %s", pr.State),
		fmt.Sprintf("- **Branch:** `%s` → `%s`", pr.HeadBranch, pr.BaseBranch),
		fmt.Sprintf("- **URL:** %s", pr.URL),
		fmt.Sprintf("- **Filter:** %s", opts.Filter),
		"",
	}

	if meaningful := meaningfulReviews(reviews); len(meaningful) > 0 {
		lines = append(lines, "## Review Summaries", "")
		for _, r := range meaningful {
			reviewer := r.Author
			if reviewer == "" {
				reviewer = "unknown"
			}
			lines = append(lines, fmt.Sprintf("- **@%s** — `%s` (%s)", reviewer, r.State, formatDate(r.SubmittedAt)))
			if body := cleanBody(r.Body); body != "" {
				lines = append(lines, "  > "+truncate(body, reviewBodyLimit))
			}
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## Inline Review Comments", "")

	if len(threads) == 0 {
		lines = append(lines, "_No inline review comments found for the selected filter._", "")
	} else {
		scope := "all, including addressed"
		if opts.Filter == review.FilterUnresolved {
			scope = "open only"
		}
		lines = append(lines, fmt.Sprintf("_%d thread(s) shown (%s)._", len(threads), scope), "")

		currentFile := ""
		haveFile := false
		for i, t := range threads {
			if !haveFile || t.Root.Path != currentFile {
				currentFile = t.Root.Path
				haveFile = true
				lines = append(lines, "---", fmt.Sprintf("## File: `%s`", currentFile), "")
			}
			lines = append(lines, renderThread(t, i+1, contextLines))
		}
	}

	if len(issueComments) > 0 {
		lines = append(lines, "---", "## General PR Comments", "")
		for _, c := range issueComments {
			author := c.Author
			if author == "" {
				author = "unknown"
			}
			lines = append(lines,
				fmt.Sprintf("**@%s** (%s) · %s · [view](%s)", author, strings.ToLower(c.AuthorAssociation), formatDate(c.CreatedAt), c.URL),
				"",
				cleanBody(c.Body),
				"",
			)
		}
	}

	return strings.Join(lines, "\n")
}

// renderThread renders one thread: heading, diff context, root comment, replies.
func renderThread(t review.Thread, index, contextLines int) string {
	status := "**OPEN**"
	if t.Resolved() {
		status = "addressed"
	}

	parts := []string{
		fmt.Sprintf("### Thread %d — `%s` (line %d) [%s]", index, t.Root.Path, t.Root.Line, status),
		"",
		"**Diff context:**",
		"```diff",
		diffHunkTail(t.Root.DiffHunk, contextLines),
		"```",
		"",
		renderComment(t.Root, ""),
		"",
	}

	if len(t.Replies) > 0 {
		parts = append(parts, "**Replies:**", "")
		for _, reply := range t.Replies {
			parts = append(parts, renderComment(reply, "> "), ">", "")
		}
	}

	return strings.Join(parts, "\n")
}

// renderComment renders a single comment header and body, prefixing every line
// with indent so replies can nest as blockquotes.
func renderComment(c githubapi.ReviewComment, indent string) string {
	header := fmt.Sprintf("%s**@%s** (%s) · %s", indent, c.Author, strings.ToLower(c.AuthorAssociation), formatDate(c.CreatedAt))
	if c.Suggestion {
		header += " · suggestion"
	}
	if c.Outdated {
		header += " · outdated"
	}

	out := []string{
		header,
		fmt.Sprintf("%s[view on GitHub](%s)", indent, c.URL),
		"",
	}
	if body := cleanBody(c.Body); body != "" {
		for _, line := range strings.Split(body, "\n") {
			out = append(out, indent+line)
		}
	}
	return strings.Join(out, "\n")
}

// meaningfulReviews keeps verdict-carrying reviews, dropping plain comment
// reviews, pending reviews and the ghost placeholder user.
func meaningfulReviews(reviews []githubapi.Review) []githubapi.Review {
	var out []githubapi.Review
	for _, r := range reviews {
		switch r.State {
		case "APPROVED", "CHANGES_REQUESTED", "DISMISSED":
			if r.Author != "ghost" {
				out = append(out, r)
			}
		}
	}
	return out
}

// diffHunkTail returns only the last n lines of the diff hunk. The full hunk
// can be very long; the tail is what actually triggered the comment.
func diffHunkTail(hunk string, n int) string {
	lines := strings.Split(strings.TrimSuffix(hunk, "\n"), "\n")
	if len(lines) <= n {
		return hunk
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

// cleanBody strips trailing whitespace from each line and blank space around
// the whole body, normalizing Windows line endings along the way.
func cleanBody(body string) string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// truncate shortens s to at most limit runes, appending an ellipsis when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

// formatDate renders the date portion of a timestamp, empty when unset.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
