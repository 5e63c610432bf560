package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// config holds the viewer's startup settings, loaded from an optional TOML
// file. Missing file or missing keys fall back to the defaults.
type config struct {
	Title                string `toml:"title"`
	Width                int    `toml:"width"`
	Height               int    `toml:"height"`
	VSync                bool   `toml:"vsync"`
	ForceFallbackAdapter bool   `toml:"force_fallback_adapter"`
	Debug                bool   `toml:"debug"`
	Profile              bool   `toml:"profile"`
}

func defaultConfig() config {
	return config{
		Title:  "BRDFs",
		Width:  1280,
		Height: 720,
		VSync:  true,
	}
}

// loadConfig reads the TOML file at path over the defaults. A missing file is
// not an error; a malformed one is.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - config: the effective configuration
//   - error: a decode error if the file exists but could not be parsed
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config %s: window dimensions must be positive, got %dx%d", path, cfg.Width, cfg.Height)
	}
	return cfg, nil
}
