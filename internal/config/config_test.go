package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thumbline/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, 1, cfg.Version)
	assert.True(t, cfg.Indicator.Enabled)
	assert.Equal(t, config.DefaultIndicatorWidth, cfg.Indicator.Width)
	assert.Equal(t, config.DefaultMinThumbHeight, cfg.Indicator.MinThumbHeight)
	assert.Equal(t, config.DefaultTransitionMs, cfg.Indicator.TransitionMs)
	assert.True(t, cfg.List.ShowPositionIndicator)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfigService_SaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cs := config.NewConfigService()

	cfg := config.DefaultConfig()
	cfg.Indicator.Enabled = false
	cfg.Indicator.Width = 2
	cfg.Indicator.MinThumbHeight = 4
	cfg.Indicator.TransitionMs = 120
	cfg.List.ShowPositionIndicator = false
	cfg.Logging.Level = "debug"
	cfg.Logging.File = "/tmp/thumbline.log"

	require.NoError(t, cs.SaveToPath(cfg, path))

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigService_LoadFromPathMissingFile(t *testing.T) {
	cs := config.NewConfigService()

	_, err := cs.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestConfigService_LoadFromPathInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("indicator = [not toml"), 0644))

	cs := config.NewConfigService()
	_, err := cs.LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestConfigService_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `version = 1

[indicator]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cs := config.NewConfigService()
	cfg, err := cs.LoadFromPath(path)
	require.NoError(t, err)

	assert.False(t, cfg.Indicator.Enabled)
	// Absent keys keep their defaults.
	assert.Equal(t, config.DefaultMinThumbHeight, cfg.Indicator.MinThumbHeight)
	assert.Equal(t, config.DefaultTransitionMs, cfg.Indicator.TransitionMs)
	assert.True(t, cfg.List.ShowPositionIndicator)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfigService_LoadSanitizesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[indicator]
width = 0
transition_ms = -5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cs := config.NewConfigService()
	cfg, err := cs.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultIndicatorWidth, cfg.Indicator.Width)
	assert.Equal(t, config.DefaultTransitionMs, cfg.Indicator.TransitionMs)
}

func TestConfigService_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.toml")
	cs := config.NewConfigService()

	require.NoError(t, cs.SaveToPath(config.DefaultConfig(), path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
