package cli

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/pr-bridge/prbridge/internal/githubapi"
)

// doctorTimeout bounds the doctor's outbound checks.
const doctorTimeout = 30 * time.Second

// newDoctorCommand creates the "doctor" subcommand that runs environment preflight checks.
func newDoctorCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run environment preflight checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			settings := SettingsFromContext(cmd.Context())

			ctx, cancel := context.WithTimeout(cmd.Context(), doctorTimeout)
			defer cancel()

			var fatalErrs []error

			if _, err := exec.LookPath("git"); err != nil {
				logger.Warn("optional tool not found", "tool", "git", "error", err)
			} else {
				logger.Info("doctor check ok", "tool", "git")
			}

			if err := runGhCheck(ctx); err != nil {
				logger.Warn("gh CLI not usable; token must come from environment variables", "error", err)
			} else {
				logger.Info("doctor check ok", "tool", "gh")
			}

			token, err := githubapi.LookupToken(ctx, logger)
			if err != nil {
				logger.Error("GitHub token check failed", "error", err)
				fatalErrs = append(fatalErrs, err)
			} else {
				logger.Info("GitHub token check ok")
			}

			if token != "" {
				client, err := githubapi.NewClient(logger, token, settings.APIBaseURL)
				if err != nil {
					logger.Error("GitHub client init failed", "error", err)
					fatalErrs = append(fatalErrs, err)
				} else if login, userErr := client.FetchAuthenticatedUser(ctx); userErr != nil {
					logger.Error("GitHub API check failed", "error", userErr)
					fatalErrs = append(fatalErrs, userErr)
				} else {
					logger.Info("GitHub API check ok", "login", login)
				}
			}

			if len(fatalErrs) > 0 {
				return fmt.Errorf("doctor found %d fatal issue(s); see log for details", len(fatalErrs))
			}

			logger.Info("doctor checks completed successfully")
			return nil
		},
	}

	return cmd
}

// runGhCheck verifies the optional gh CLI is installed and executable.
func runGhCheck(ctx context.Context) error {
	if _, err := exec.LookPath("gh"); err != nil {
		return fmt.Errorf("gh CLI not found in PATH: %w", err)
	}
	cmd := exec.CommandContext(ctx, "gh", "--version")
	return cmd.Run()
}
