package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName returns the canonical report file name for a pull request.
func DefaultFileName(owner, repo string, number int) string {
	return fmt.Sprintf("pr-%d-%s-%s.md", number, owner, repo)
}

// ResolveOutputPath decides where the report file lands. An empty outputArg
// selects the default file name in the current directory. An existing
// directory, or a non-existent path without a file extension, is treated as a
// directory receiving the default file name; anything else is used as an
// explicit file path. Directories needed along the way are created.
func ResolveOutputPath(outputArg, owner, repo string, number int) (string, error) {
	name := DefaultFileName(owner, repo, number)

	outputArg = strings.TrimSpace(outputArg)
	if outputArg == "" {
		return name, nil
	}

	info, err := os.Stat(outputArg)
	isDir := err == nil && info.IsDir()
	if isDir || (errors.Is(err, fs.ErrNotExist) && filepath.Ext(outputArg) == "") {
		if mkErr := os.MkdirAll(outputArg, 0o755); mkErr != nil {
			return "", fmt.Errorf("creating output directory %q: %w", outputArg, mkErr)
		}
		return filepath.Join(outputArg, name), nil
	}

	if dir := filepath.Dir(outputArg); dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return "", fmt.Errorf("creating parent directory for %q: %w", outputArg, mkErr)
		}
	}
	return outputArg, nil
}
