package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, int64(10*1024*1024), cfg.Limits.MaxUploadBytes)
	assert.Equal(t, 100, cfg.Limits.MaxPreviewRows)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GSCCLEAN_SERVER_PORT", "9090")
	t.Setenv("GSCCLEAN_LOGGING_LEVEL", "debug")
	t.Setenv("GSCCLEAN_LIMITS_MAX_UPLOAD_BYTES", "1024")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int64(1024), cfg.Limits.MaxUploadBytes)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7070\nlogging:\n  level: warn\n"), 0644))
	t.Setenv("GSCCLEAN_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidLevel(t *testing.T) {
	t.Setenv("GSCCLEAN_LOGGING_LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("GSCCLEAN_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
