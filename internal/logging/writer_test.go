package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_ForwardsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelDebug)

	n, err := NewWriter(logger).Write([]byte("hello world\n"))

	require.NoError(t, err)
	assert.Equal(t, len("hello world\n"), n)
	assert.Contains(t, buf.String(), "command output")
	assert.Contains(t, buf.String(), "hello world")
}

func TestWriter_LevelControlsVisibility(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelWarn)

	_, err := NewWriter(logger).Write([]byte("info noise\n"))
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "info lines are below the logger level")

	_, err = NewWriterLevel(logger, LevelWarn).Write([]byte("warn line\n"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "warn line")
}

func TestWriter_SkipsBlankLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelDebug)

	n, err := NewWriter(logger).Write([]byte("\n"))

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, buf.String())
}

func TestWriter_NilLoggerIsSafe(t *testing.T) {
	n, err := NewWriter(nil).Write([]byte("dropped\n"))

	require.NoError(t, err)
	assert.Equal(t, len("dropped\n"), n)
}
