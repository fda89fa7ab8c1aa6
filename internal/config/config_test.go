package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSettings writes a settings file into dir and returns its path.
func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".prbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ParsesAllFields(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, `filter: unresolved
output: reports
noGeneral: true
diffContextLines: 10
apiBaseURL: https://github.example.com/api/v3/
excludeAuthors:
  - coderabbitai[bot]
  - dependabot[bot]
envFiles:
  - .env.prbridge
timeout: 90s
logLevel: debug
`)

	s, err := Load(path, true)

	require.NoError(t, err)
	assert.Equal(t, "unresolved", s.Filter)
	assert.Equal(t, "reports", s.Output)
	assert.True(t, s.NoGeneral)
	assert.Equal(t, 10, s.DiffContextLines)
	assert.Equal(t, "https://github.example.com/api/v3/", s.APIBaseURL)
	assert.Equal(t, []string{"coderabbitai[bot]", "dependabot[bot]"}, s.ExcludeAuthors)
	assert.Equal(t, []string{".env.prbridge"}, s.EnvFiles)
	assert.Equal(t, "90s", s.Timeout)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, dir, s.BaseDir())
}

func TestLoad_MissingOptionalFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)

	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "", s.Filter)
	assert.Equal(t, "", s.BaseDir())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read settings")
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "")

	s, err := Load(path, true)

	require.NoError(t, err)
	assert.Equal(t, "", s.Filter)
	assert.Equal(t, dir, s.BaseDir())
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeSettings(t, t.TempDir(), "filter: [oops")

	_, err := Load(path, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings")
}

func TestLoad_RejectsInvalidFilter(t *testing.T) {
	path := writeSettings(t, t.TempDir(), "filter: sometimes\n")

	_, err := Load(path, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter")
}

func TestLoad_RejectsInvalidTimeout(t *testing.T) {
	path := writeSettings(t, t.TempDir(), "timeout: 5 minutes\n")

	_, err := Load(path, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}

func TestValidate_RejectsNegativeDiffContextLines(t *testing.T) {
	s := Settings{DiffContextLines: -1}

	err := s.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "diffContextLines")
}

func TestParsedTimeout(t *testing.T) {
	var s Settings
	d, err := s.ParsedTimeout(2 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d, "empty timeout returns the fallback")

	s.Timeout = "90s"
	d, err = s.ParsedTimeout(2 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}
