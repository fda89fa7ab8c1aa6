package githubapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
)

// Client wraps the go-github REST client for read-only pull request review queries.
type Client struct {
	gh     *gh.Client
	logger *slog.Logger
}

// NewClient creates a GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with token auth)
//
// An empty baseURL targets api.github.com; set it to the REST endpoint of a
// GitHub Enterprise host otherwise.
func NewClient(logger *slog.Logger, token, baseURL string) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	if strings.TrimSpace(baseURL) != "" {
		u, err := parseBaseURL(baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}

	return &Client{gh: client, logger: logger}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(logger *slog.Logger, httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	client.BaseURL = u

	return &Client{gh: client, logger: logger}, nil
}

// parseBaseURL parses an API base URL, ensuring the trailing slash go-github requires.
func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", raw, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// FetchPullRequest retrieves the metadata of a single pull request.
func (c *Client) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	pr, resp, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request %s/%s#%d: %w", owner, repo, number, err)
	}

	c.logRateLimit(resp, "pull-request", 0, 1)

	mapped := mapPullRequest(pr, owner, repo, number)
	return &mapped, nil
}

// FetchReviewComments retrieves all inline review comments of a pull request.
// It handles pagination automatically and maps go-github types to domain types.
func (c *Client) FetchReviewComments(ctx context.Context, owner, repo string, number int) ([]ReviewComment, error) {
	opts := &gh.PullRequestListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var all []ReviewComment

	for {
		comments, resp, err := c.gh.PullRequests.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing review comments for %s/%s#%d (page %d): %w", owner, repo, number, opts.Page, err)
		}

		c.logRateLimit(resp, "review-comments", opts.Page, len(comments))

		for _, comment := range comments {
			all = append(all, mapReviewComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// FetchIssueComments retrieves all general PR-level comments (from the Issues API)
// of a pull request. It handles pagination automatically.
func (c *Client) FetchIssueComments(ctx context.Context, owner, repo string, number int) ([]IssueComment, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var all []IssueComment

	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing general comments for %s/%s#%d (page %d): %w", owner, repo, number, opts.Page, err)
		}

		c.logRateLimit(resp, "issue-comments", opts.Page, len(comments))

		for _, comment := range comments {
			all = append(all, mapIssueComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// FetchReviews retrieves all review summaries of a pull request.
// It handles pagination automatically.
func (c *Client) FetchReviews(ctx context.Context, owner, repo string, number int) ([]Review, error) {
	opts := &gh.ListOptions{PerPage: 100}
	var all []Review

	for {
		reviews, resp, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing reviews for %s/%s#%d (page %d): %w", owner, repo, number, opts.Page, err)
		}

		c.logRateLimit(resp, "reviews", opts.Page, len(reviews))

		for _, review := range reviews {
			all = append(all, mapReview(review))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// FetchAuthenticatedUser returns the login associated with the configured
// token. The doctor command uses it as a connectivity and credential check.
func (c *Client) FetchAuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("fetching authenticated user: %w", err)
	}

	c.logRateLimit(resp, "user", 0, 1)

	return user.GetLogin(), nil
}

// mapPullRequest converts a go-github PullRequest to the domain PullRequest.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapPullRequest(pr *gh.PullRequest, owner, repo string, number int) PullRequest {
	author := pr.GetUser().GetLogin()
	if author == "" {
		author = "unknown"
	}

	return PullRequest{
		Owner:      owner,
		Repo:       repo,
		Number:     number,
		Title:      pr.GetTitle(),
		Author:     author,
		State:      pr.GetState(),
		Body:       pr.GetBody(),
		URL:        pr.GetHTMLURL(),
		BaseBranch: pr.GetBase().GetRef(),
		HeadBranch: pr.GetHead().GetRef(),
	}
}

// mapReviewComment converts a go-github PullRequestComment to the domain ReviewComment.
// The line number prefers original_line over line, matching the diff position the
// comment was left on; a nil position marks the comment as outdated.
func mapReviewComment(c *gh.PullRequestComment) ReviewComment {
	line := c.GetOriginalLine()
	if line == 0 {
		line = c.GetLine()
	}

	return ReviewComment{
		ID:                c.GetID(),
		Author:            c.GetUser().GetLogin(),
		AuthorAssociation: c.GetAuthorAssociation(),
		Body:              c.GetBody(),
		Path:              c.GetPath(),
		Line:              line,
		DiffHunk:          c.GetDiffHunk(),
		CreatedAt:         c.GetCreatedAt().Time,
		URL:               c.GetHTMLURL(),
		InReplyToID:       c.GetInReplyTo(),
		Suggestion:        strings.Contains(c.GetBody(), "```suggestion"),
		Outdated:          c.Position == nil,
	}
}

// mapIssueComment converts a go-github IssueComment to the domain IssueComment.
func mapIssueComment(c *gh.IssueComment) IssueComment {
	return IssueComment{
		ID:                c.GetID(),
		Author:            c.GetUser().GetLogin(),
		AuthorAssociation: c.GetAuthorAssociation(),
		Body:              c.GetBody(),
		CreatedAt:         c.GetCreatedAt().Time,
		URL:               c.GetHTMLURL(),
	}
}

// mapReview converts a go-github PullRequestReview to the domain Review.
func mapReview(r *gh.PullRequestReview) Review {
	return Review{
		Author:      r.GetUser().GetLogin(),
		State:       r.GetState(),
		Body:        r.GetBody(),
		SubmittedAt: r.GetSubmittedAt().Time,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func (c *Client) logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil || c.logger == nil {
		return
	}

	c.logger.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		c.logger.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
