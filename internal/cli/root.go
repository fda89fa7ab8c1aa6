// Package cli defines the command-line interface for prbridge.
package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pr-bridge/prbridge/internal/config"
	"github.com/pr-bridge/prbridge/internal/env"
	"github.com/pr-bridge/prbridge/internal/logging"
)

// version is the CLI version reported by --version; release builds override it
// via -ldflags "-X .../internal/cli.version=...".
var version = "0.1.0"

// Options stores global CLI options shared between commands.
type Options struct {
	SettingsPath string
	LogLevel     logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		LogLevel: logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prbridge",
		Short:   "prbridge exports GitHub PR review comments to AI-friendly Markdown",
		Long:    "prbridge fetches pull request review threads, general comments and review summaries from the GitHub API and renders them as a structured Markdown report for AI coding assistants.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}

			if len(settings.EnvFiles) > 0 {
				fileVars, err := env.LoadEnvFiles(settings.BaseDir(), settings.EnvFiles)
				if err != nil {
					return err
				}
				if err := env.Apply(fileVars); err != nil {
					return err
				}
			}

			level := resolveLogLevel(cmd, settings)
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level)

			ctx := context.WithValue(cmd.Context(), loggerKey{}, logger)
			ctx = context.WithValue(ctx, settingsKey{}, settings)
			cmd.SetContext(ctx)

			logger.Debug("logger initialized", "level", level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.SettingsPath, "settings", "s", "", "Path to a .prbridge.yaml settings file (defaults to ./"+config.DefaultSettingsPath+" when present)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newFetchCommand(opts),
		newDoctorCommand(opts),
		newVersionCommand(opts),
	)

	return cmd
}

// loadSettings resolves the settings file path (flag, then PRBRIDGE_SETTINGS)
// and loads it. Only an explicitly requested file is required to exist.
func loadSettings(cmd *cobra.Command, opts *Options) (*config.Settings, error) {
	path := opts.SettingsPath
	explicit := cmd.Flags().Changed("settings")

	if !explicit {
		var envVals rootEnv
		if err := parseEnv(&envVals); err == nil && strings.TrimSpace(envVals.Settings) != "" {
			path = envVals.Settings
			explicit = true
		}
	}

	return config.Load(path, explicit)
}

// resolveLogLevel picks the log level from the flag, the PRBRIDGE_LOG_LEVEL
// variable or the settings file, in that order.
func resolveLogLevel(cmd *cobra.Command, settings *config.Settings) logging.Level {
	if cmd.Flags().Changed("log-level") {
		return logging.ParseLevel(cmd.Flag("log-level").Value.String())
	}

	var envVals rootEnv
	if err := parseEnv(&envVals); err == nil && strings.TrimSpace(envVals.LogLevel) != "" {
		return logging.ParseLevel(envVals.LogLevel)
	}

	if strings.TrimSpace(settings.LogLevel) != "" {
		return logging.ParseLevel(settings.LogLevel)
	}

	return logging.ParseLevel(cmd.Flag("log-level").Value.String())
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}

// settingsKey is a private context key used to store loaded settings in command contexts.
type settingsKey struct{}

// SettingsFromContext extracts loaded settings from the context, falling back
// to zero-value settings.
func SettingsFromContext(ctx context.Context) *config.Settings {
	if ctx == nil {
		return &config.Settings{}
	}
	if s, ok := ctx.Value(settingsKey{}).(*config.Settings); ok && s != nil {
		return s
	}
	return &config.Settings{}
}
