package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, "BRDFs", cfg.Title)
	assert.True(t, cfg.VSync)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brdfview.toml")
	contents := `
title = "Viewer"
width = 800
height = 600
vsync = false
force_fallback_adapter = true
profile = true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Viewer", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.False(t, cfg.VSync)
	assert.True(t, cfg.ForceFallbackAdapter)
	assert.True(t, cfg.Profile)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brdfview.toml")
	require.NoError(t, os.WriteFile(path, []byte(`title = "Partial"`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Partial", cfg.Title)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	malformed := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(malformed, []byte(`width = "wide"`), 0o644))
	_, err := loadConfig(malformed)
	assert.Error(t, err)

	negative := filepath.Join(dir, "negative.toml")
	require.NoError(t, os.WriteFile(negative, []byte("width = -1\nheight = 600"), 0o644))
	_, err = loadConfig(negative)
	assert.Error(t, err)
}
