package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/tailscale/hujson"
)

const (
	formatPlain = "plain"
	formatJSON  = "json"
)

// fileConfig is the on-disk shape of the optional HuJSON config file: plain
// JSON with comments and trailing commas tolerated.
type fileConfig struct {
	MaxMarkersSweep int    `json:"max_markers_sweep,omitempty"`
	Format          string `json:"format,omitempty"`
}

// Config is the resolved configuration after defaults and an optional
// config file are applied. CLI flags are layered on top by the caller.
type Config struct {
	MaxMarkersSweep int
	Format          string
}

func defaultConfig() Config {
	return Config{Format: formatPlain}
}

// loadConfig reads an optional HuJSON config file from path. An empty path
// returns the defaults unchanged; a missing explicit path is an error.
func loadConfig(fs afero.Fs, path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", errConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(standardized, &fc); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	if fc.MaxMarkersSweep > 0 {
		cfg.MaxMarkersSweep = fc.MaxMarkersSweep
	}
	if fc.Format != "" {
		cfg.Format = fc.Format
	}
	return cfg, nil
}
