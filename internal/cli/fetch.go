package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pr-bridge/prbridge/internal/ghoutput"
	"github.com/pr-bridge/prbridge/internal/githubapi"
	"github.com/pr-bridge/prbridge/internal/report"
	"github.com/pr-bridge/prbridge/internal/review"
)

// defaultFetchTimeout bounds a whole fetch run unless overridden.
const defaultFetchTimeout = 2 * time.Minute

// newFetchCommand creates the "fetch" subcommand that exports a PR review report.
func newFetchCommand(opts *Options) *cobra.Command {
	var (
		output    string
		filter    string
		noGeneral bool
		toStdout  bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fetch PR_URL",
		Short: "Fetch PR review comments and export them as Markdown",
		Long:  "Fetch inline review threads, general comments and review summaries for a pull request and save them as an AI-friendly Markdown report.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())
			settings := SettingsFromContext(cmd.Context())

			var envVals fetchEnv
			if err := parseEnv(&envVals); err != nil {
				return err
			}

			if !cmd.Flags().Changed("output") {
				if strings.TrimSpace(envVals.Output) != "" {
					output = envVals.Output
				} else if strings.TrimSpace(settings.Output) != "" {
					output = settings.Output
				}
			}
			if !cmd.Flags().Changed("filter") {
				if strings.TrimSpace(envVals.Filter) != "" {
					filter = envVals.Filter
				} else if strings.TrimSpace(settings.Filter) != "" {
					filter = settings.Filter
				}
			}
			if !cmd.Flags().Changed("no-general") {
				if envPresent("PRBRIDGE_NO_GENERAL") {
					noGeneral = envVals.NoGeneral
				} else if settings.NoGeneral {
					noGeneral = true
				}
			}
			if !cmd.Flags().Changed("timeout") {
				if strings.TrimSpace(envVals.Timeout) != "" {
					parsed, err := time.ParseDuration(envVals.Timeout)
					if err != nil {
						return fmt.Errorf("invalid PRBRIDGE_TIMEOUT %q: %w", envVals.Timeout, err)
					}
					timeout = parsed
				} else {
					parsed, err := settings.ParsedTimeout(timeout)
					if err != nil {
						return err
					}
					timeout = parsed
				}
			}

			if !review.ValidFilter(filter) {
				return fmt.Errorf("invalid filter %q, expected all or unresolved", filter)
			}

			owner, repo, number, err := githubapi.ParsePRURL(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			token, err := githubapi.LookupToken(ctx, logger)
			if err != nil {
				return err
			}

			client, err := githubapi.NewClient(logger, token, settings.APIBaseURL)
			if err != nil {
				return err
			}

			logger.Info("fetching pull request", "repository", owner+"/"+repo, "number", number)

			pr, err := client.FetchPullRequest(ctx, owner, repo, number)
			if err != nil {
				return err
			}
			logger.Info("fetched pull request", "title", pr.Title)

			comments, err := client.FetchReviewComments(ctx, owner, repo, number)
			if err != nil {
				return err
			}
			logger.Info("fetched inline review comments", "count", len(comments))

			var issueComments []githubapi.IssueComment
			if !noGeneral {
				issueComments, err = client.FetchIssueComments(ctx, owner, repo, number)
				if err != nil {
					return err
				}
				logger.Info("fetched general PR comments", "count", len(issueComments))
			}

			reviews, err := client.FetchReviews(ctx, owner, repo, number)
			if err != nil {
				return err
			}
			logger.Info("fetched review summaries", "count", len(reviews))

			comments = review.ExcludeAuthors(comments, settings.ExcludeAuthors)
			issueComments = review.ExcludeGeneralAuthors(issueComments, settings.ExcludeAuthors)

			threads := review.FilterThreads(review.BuildThreads(comments), filter)

			logger.Info("formatting report", "filter", filter, "threads", len(threads))

			markdown := report.Render(pr, threads, issueComments, reviews, report.Options{
				Filter:           filter,
				DiffContextLines: settings.DiffContextLines,
			})

			if toStdout {
				if _, err := os.Stdout.WriteString(markdown); err != nil {
					return fmt.Errorf("write report to stdout: %w", err)
				}
				return nil
			}

			outPath, err := report.ResolveOutputPath(output, owner, repo, number)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, []byte(markdown), 0o644); err != nil {
				return fmt.Errorf("write report %q: %w", outPath, err)
			}

			openCount := 0
			for _, t := range threads {
				if !t.Resolved() {
					openCount++
				}
			}

			if err := ghoutput.Write(map[string]string{
				"report-path":       outPath,
				"thread-count":      strconv.Itoa(len(threads)),
				"open-thread-count": strconv.Itoa(openCount),
			}); err != nil {
				logger.Warn("failed to publish GitHub Actions outputs", "error", err)
			}

			logger.Info("report saved", "path", outPath, "threads", len(threads), "open", openCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory or file path (defaults to ./pr-<NUMBER>-<owner>-<repo>.md)")
	cmd.Flags().StringVarP(&filter, "filter", "f", review.FilterAll, "Which threads to include: all, or unresolved for threads with no replies yet")
	cmd.Flags().BoolVar(&noGeneral, "no-general", false, "Exclude general (non-inline) PR comments from the report")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the report to stdout instead of writing a file")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultFetchTimeout, "Overall timeout for the fetch run")
	cmd.MarkFlagsMutuallyExclusive("output", "stdout")

	return cmd
}
