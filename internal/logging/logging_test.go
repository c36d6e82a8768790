package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "triviaz.log")

	logger, err := New(config.Log{Level: "debug", File: path, Format: "json"})
	require.NoError(t, err)
	logger.Debug("hello")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"hello"`)
	assert.Contains(t, string(raw), `"logger":"triviaz"`)
}

func TestNew_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triviaz.log")

	logger, err := New(config.Log{Level: "warn", File: path, Format: "console"})
	require.NoError(t, err)
	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "quiet")
	assert.Contains(t, string(raw), "loud")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.Log{Level: "chatty", File: filepath.Join(t.TempDir(), "x.log")})
	require.Error(t, err)
}

func TestDefaultLogPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	got, err := DefaultLogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "triviaz", "triviaz.log"), got)
}
