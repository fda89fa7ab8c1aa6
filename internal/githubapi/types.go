// Package githubapi provides a read-only GitHub REST API client for pull request review data.
package githubapi

import "time"

type PullRequest struct {
	// Owner is the repository owner login.
	Owner string
	// Repo is the repository name.
	Repo string
	// Number is the pull request number.
	Number int
	// Title is the pull request title.
	Title string
	// Author is the GitHub login of the pull request author.
	Author string
	// State is the pull request state (open, closed, merged).
	State string
	// Body is the raw markdown body of the pull request description.
	Body string
	// URL is the canonical HTML URL of the pull request.
	URL string
	// BaseBranch is the branch the pull request merges into.
	BaseBranch string
	// HeadBranch is the branch the pull request merges from.
	HeadBranch string
}

type ReviewComment struct {
	// ID is the GitHub comment database ID.
	ID int64
	// Author is the GitHub login of the comment author.
	Author string
	// AuthorAssociation is the author's relation to the repository (OWNER, MEMBER, ...).
	AuthorAssociation string
	// Body is the raw markdown body of the comment.
	Body string
	// Path is the repository-relative file path the comment is anchored to.
	Path string
	// Line is the commented line number, preferring the original diff line when present.
	Line int
	// DiffHunk is the unified diff excerpt surrounding the commented line.
	DiffHunk string
	// CreatedAt is the comment creation time.
	CreatedAt time.Time
	// URL is the canonical HTML URL of the comment.
	URL string
	// InReplyToID is the parent comment ID, zero for thread roots.
	InReplyToID int64
	// Suggestion reports whether the body carries a GitHub suggestion block.
	Suggestion bool
	// Outdated reports whether the comment no longer maps onto the current diff.
	Outdated bool
}

type IssueComment struct {
	// ID is the GitHub comment database ID.
	ID int64
	// Author is the GitHub login of the comment author.
	Author string
	// AuthorAssociation is the author's relation to the repository (OWNER, MEMBER, ...).
	AuthorAssociation string
	// Body is the raw markdown body of the comment.
	Body string
	// CreatedAt is the comment creation time.
	CreatedAt time.Time
	// URL is the canonical HTML URL of the comment.
	URL string
}

type Review struct {
	// Author is the GitHub login of the reviewer.
	Author string
	// State is the review verdict (APPROVED, CHANGES_REQUESTED, COMMENTED, DISMISSED, PENDING).
	State string
	// Body is the raw markdown body of the review summary.
	Body string
	// SubmittedAt is the review submission time.
	SubmittedAt time.Time
}
