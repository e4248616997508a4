// Package config loads the small YAML configuration file the
// demonstration driver (cmd/flowc) reads at startup. The LSP server does
// not read it.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the driver/LSP configuration document.
type Config struct {
	// ExtractDir names a destination directory for resource extraction.
	// It is loaded but not read: resources.ExtractSpec always extracts
	// into ".".
	ExtractDir string `yaml:"extractDir"`
	// LogLevel is a log level name (e.g. "debug", "info", "warning").
	// cmd/flowc prints extra progress output when it is "debug".
	LogLevel string `yaml:"logLevel"`
	// DisableCSE is loaded but not read: ir.Builder always shares common
	// subexpressions.
	DisableCSE bool `yaml:"disableCSE"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{ExtractDir: "./out", LogLevel: "info"}
}

// Load reads and parses a YAML config file at path, starting from
// Default() so a partial document only overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
