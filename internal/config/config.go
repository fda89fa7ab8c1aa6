// Package config contains the loader and strongly typed model for the
// optional .prbridge.yaml settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pr-bridge/prbridge/internal/review"
)

// DefaultSettingsPath is the settings file looked up in the working directory
// when no explicit path is given.
const DefaultSettingsPath = ".prbridge.yaml"

// Settings represents project-level defaults for report generation. Every
// field is optional; flags and PRBRIDGE_* environment variables override it.
type Settings struct {
	// Filter is the default thread filter mode (all, unresolved).
	Filter string `yaml:"filter,omitempty"`
	// Output is the default output directory or file path for reports.
	Output string `yaml:"output,omitempty"`
	// NoGeneral excludes general PR comments from reports by default.
	NoGeneral bool `yaml:"noGeneral,omitempty"`
	// DiffContextLines is how many trailing diff hunk lines each thread shows.
	DiffContextLines int `yaml:"diffContextLines,omitempty"`
	// APIBaseURL points the client at a GitHub Enterprise REST endpoint
	// instead of api.github.com.
	APIBaseURL string `yaml:"apiBaseURL,omitempty"`
	// ExcludeAuthors lists comment author logins dropped from reports,
	// typically bot accounts.
	ExcludeAuthors []string `yaml:"excludeAuthors,omitempty"`
	// EnvFiles lists .env files loaded before reading PRBRIDGE_* variables.
	// Relative paths resolve against the settings file directory.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// Timeout bounds a whole fetch run, as a Go duration string (e.g. "2m").
	Timeout string `yaml:"timeout,omitempty"`
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"logLevel,omitempty"`

	// baseDir is the directory of the loaded file, for resolving EnvFiles.
	baseDir string
}

// BaseDir returns the directory the settings file was loaded from, or the
// empty string for zero-value settings.
func (s *Settings) BaseDir() string {
	return s.baseDir
}

// ParsedTimeout converts the Timeout field, returning fallback when unset.
func (s *Settings) ParsedTimeout(fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s.Timeout) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in settings: %w", s.Timeout, err)
	}
	return d, nil
}

// Validate checks field values that have a closed set of accepted forms.
func (s *Settings) Validate() error {
	if s.Filter != "" && !review.ValidFilter(s.Filter) {
		return fmt.Errorf("invalid filter %q in settings, expected all or unresolved", s.Filter)
	}
	if s.DiffContextLines < 0 {
		return fmt.Errorf("diffContextLines must not be negative, got %d", s.DiffContextLines)
	}
	if _, err := s.ParsedTimeout(0); err != nil {
		return err
	}
	return nil
}

// Load reads and parses a settings file. When explicit is false a missing file
// is not an error and zero-value settings are returned; an explicitly
// requested path must exist.
func Load(path string, explicit bool) (*Settings, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultSettingsPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read settings %q: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse settings %q: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path %q: %w", path, err)
	}
	s.baseDir = filepath.Dir(absPath)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}
