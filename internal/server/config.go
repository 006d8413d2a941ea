// Package server implements the BiographDB HTTP API.
//
// This file defines the yaml server configuration. Flags on the binary
// override values loaded from the file.
package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure of the server configuration file.
type Config struct {
	// HTTPAddr is the listen address, e.g. ":9092".
	HTTPAddr string `yaml:"http_addr"`

	// AuthToken protects the query endpoints via bearer auth.
	// Empty disables authentication.
	AuthToken string `yaml:"auth_token"`

	// DataDir holds the graph snapshot and the mappings directory.
	DataDir string `yaml:"data_dir"`

	// Directed selects the directed interaction graph.
	Directed bool `yaml:"directed"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		HTTPAddr: ":9092",
		DataDir:  "./data",
	}
}

// LoadConfig reads a yaml configuration file. An empty path yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":9092"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	return cfg, nil
}
