package cli

import (
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
)

// rootEnv defines root CLI defaults sourced from PRBRIDGE_* env vars.
type rootEnv struct {
	// Settings is the settings file path from PRBRIDGE_SETTINGS.
	Settings string `env:"PRBRIDGE_SETTINGS"`
	// LogLevel is the logging level from PRBRIDGE_LOG_LEVEL.
	LogLevel string `env:"PRBRIDGE_LOG_LEVEL"`
}

// fetchEnv captures PRBRIDGE_* inputs for the fetch command.
type fetchEnv struct {
	// Output is the output directory or file path from PRBRIDGE_OUTPUT.
	Output string `env:"PRBRIDGE_OUTPUT"`
	// Filter is the thread filter mode from PRBRIDGE_FILTER.
	Filter string `env:"PRBRIDGE_FILTER"`
	// NoGeneral excludes general PR comments from PRBRIDGE_NO_GENERAL.
	NoGeneral bool `env:"PRBRIDGE_NO_GENERAL"`
	// Timeout is the fetch run timeout from PRBRIDGE_TIMEOUT.
	Timeout string `env:"PRBRIDGE_TIMEOUT"`
}

// parseEnv fills target from PRBRIDGE_* env vars via caarlos0/env.
func parseEnv(target interface{}) error {
	return envparse.Parse(target)
}

// envPresent reports whether a non-empty env var exists.
func envPresent(key string) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}
