package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-bridge/prbridge/internal/cli"
)

func TestExecute_ExplicitSettingsMustExist(t *testing.T) {
	isolateCLIEnv(t)

	err := cli.Execute([]string{
		"doctor",
		"--settings", filepath.Join(t.TempDir(), "missing.yaml"),
		"--log-level", "error",
	}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read settings")
}

func TestExecute_SettingsPathFromEnvironment(t *testing.T) {
	isolateCLIEnv(t)
	t.Setenv("PRBRIDGE_SETTINGS", filepath.Join(t.TempDir(), "missing.yaml"))

	err := cli.Execute([]string{"doctor", "--log-level", "error"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read settings")
}

func TestExecute_InvalidSettingsRejected(t *testing.T) {
	isolateCLIEnv(t)
	settings := writeSettings(t, t.TempDir(), "filter: sometimes\n")

	err := cli.Execute([]string{"doctor", "--settings", settings, "--log-level", "error"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter")
}

func TestExecute_UnknownCommand(t *testing.T) {
	isolateCLIEnv(t)

	err := cli.Execute([]string{"bogus"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestExecute_VersionCommand(t *testing.T) {
	isolateCLIEnv(t)

	err := cli.Execute([]string{"version"}, nil)

	require.NoError(t, err)
}
