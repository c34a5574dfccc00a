package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, "http://localhost:8000", c.ResolvedBaseURL())
	assert.Equal(t, "/api", c.ResolvedAPIPrefix())
	assert.Equal(t, 10*time.Second, c.ResolvedTimeout())
	assert.Equal(t, 2500*time.Millisecond, c.ResolvedPollInterval())
	assert.Equal(t, 4*time.Second, c.ResolvedAutoTickInterval())
	assert.Equal(t, 50, c.ResolvedFeedLimit())
	assert.Equal(t, 2, c.ResolvedFillerCount())
	assert.Equal(t, 50, c.ResolvedMaxArguments())
	assert.Equal(t, 25, c.ResolvedMaxEvents())
	assert.True(t, c.ResolvedShowSidebar())
	assert.Equal(t, DefaultTheme(), c.ResolvedTheme())
}

func TestFillerCountClamped(t *testing.T) {
	c := Config{Display: DisplayConfig{FillerCount: 9}}
	assert.Equal(t, 5, c.ResolvedFillerCount())
	c.Display.FillerCount = -2
	assert.Equal(t, 1, c.ResolvedFillerCount())
}

func TestLoadAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
base_url = "http://arena.local:9000/"

[polling]
interval_ms = 1000

[theme]
majority = "#00ff00"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://arena.local:9000", cfg.ResolvedBaseURL())
	assert.Equal(t, time.Second, cfg.ResolvedPollInterval())
	assert.Equal(t, "#00ff00", cfg.ResolvedTheme().Majority)
	assert.Equal(t, DefaultTheme().Minority, cfg.ResolvedTheme().Minority)

	t.Setenv("TROLLEY_BASE_URL", "http://override:8001")
	t.Setenv("TROLLEY_GAME_ID", "g-42")
	t.Setenv("LOG_LEVEL", "debug")
	require.NoError(t, ApplyEnv(&cfg))
	assert.Equal(t, "http://override:8001", cfg.ResolvedBaseURL())
	assert.Equal(t, "g-42", cfg.GameID)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, time.Second, cfg.ResolvedPollInterval(), "file values survive")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
