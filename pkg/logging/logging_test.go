package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		_, _ = Setup(Options{})
		SetOutput(os.Stderr)
	})
}

func TestNewTagsComponent(t *testing.T) {
	reset(t)
	t.Setenv(EnvVar, "")
	var buf bytes.Buffer
	SetOutput(&buf)

	l := New("board")
	l.Info().Str("window", "1").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "board", line["component"])
	assert.Equal(t, "1", line["window"])
	assert.Equal(t, "hello", line["message"])
	assert.Contains(t, line, "time")
}

func TestSetupLevelFiltersDebug(t *testing.T) {
	reset(t)
	t.Setenv(EnvVar, "")
	_, err := Setup(Options{Level: "warn"})
	require.NoError(t, err)
	var buf bytes.Buffer
	SetOutput(&buf)

	l := New("store")
	l.Debug().Msg("hidden")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupRejectsBadLevel(t *testing.T) {
	reset(t)
	_, err := Setup(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestConsoleFormat(t *testing.T) {
	reset(t)
	t.Setenv(EnvVar, "dev")
	var buf bytes.Buffer
	SetOutput(&buf)

	l := New("tui")
	l.Info().Msg("ready")

	assert.Contains(t, buf.String(), "ready")
	assert.Contains(t, buf.String(), "component=tui")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestSetupFile(t *testing.T) {
	reset(t)
	t.Setenv(EnvVar, "")
	path := filepath.Join(t.TempDir(), "marquee.log")
	closer, err := Setup(Options{File: path})
	require.NoError(t, err)

	l := New("cli")
	l.Info().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
