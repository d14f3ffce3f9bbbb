package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AGM_DATA_DIR", dir)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "stderr", cfg.LogOutput)
}

func TestLoadConfigDefaultDataDir(t *testing.T) {
	t.Setenv("AGM_DATA_DIR", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultDataDirName), cfg.DataDir)
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "yaml", DataDir: "/data", Locale: "en"}

	cfg.UpdateFromFlags(true, false, true, "", "", "", "zh")
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, "zh", cfg.Locale)

	cfg.UpdateFromFlags(false, true, false, "json", "debug", "/other", "")
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/other", cfg.DataDir)
	assert.Equal(t, "zh", cfg.Locale)
}
