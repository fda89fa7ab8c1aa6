package githubapi

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/pr-bridge/prbridge/internal/logging"
)

// tokenEnvVars lists the environment variables consulted for a token, in precedence order.
var tokenEnvVars = []string{"PRBRIDGE_TOKEN", "GH_TOKEN", "GITHUB_TOKEN"}

// LookupToken resolves a GitHub API token from the environment, falling back to
// the stored gh CLI session when the gh binary is installed.
func LookupToken(ctx context.Context, logger *slog.Logger) (string, error) {
	for _, key := range tokenEnvVars {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, nil
		}
	}
	if token, ok := tokenFromGhCLI(ctx, logger); ok {
		return token, nil
	}
	return "", fmt.Errorf("GitHub token is required; set PRBRIDGE_TOKEN or GH_TOKEN or GITHUB_TOKEN, or sign in with gh auth login")
}

// tokenFromGhCLI asks an installed gh CLI for its stored OAuth token.
func tokenFromGhCLI(ctx context.Context, logger *slog.Logger) (string, bool) {
	if _, err := exec.LookPath("gh"); err != nil {
		return "", false
	}

	var out strings.Builder
	cmd := exec.CommandContext(ctx, "gh", "auth", "token")
	cmd.Stdout = &out
	cmd.Stderr = logging.NewWriterLevel(logger, logging.LevelWarn)
	if err := cmd.Run(); err != nil {
		logger.Debug("gh auth token lookup failed", "error", err)
		return "", false
	}

	token := strings.TrimSpace(out.String())
	if token == "" {
		return "", false
	}
	logger.Debug("using GitHub token from gh CLI session")
	return token, true
}
