// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Exit codes used across all subcommands.
const (
	ExitGeneral = 1
	ExitUsage   = 2
	ExitConfig  = 3
	ExitInput   = 4
	ExitNeo4j   = 5
)

// Config is the .edbgen/config.yaml file.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Storage StorageConfig `yaml:"storage"`
	Neo4j   Neo4jConfig   `yaml:"neo4j"`
}

// InputConfig sets where bulk-import files are read from.
type InputConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig sets where declaration and fact files are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// StorageConfig sets the default node EDB layout.
type StorageConfig struct {
	Mode string `yaml:"mode"`
}

// Neo4jConfig holds connection settings for the fetch command. The
// password is normally supplied via EDBGEN_NEO4J_PASSWORD rather than
// stored in the file.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{Mode: "row"},
		Neo4j: Neo4jConfig{
			URI:      "bolt://localhost:7687",
			Username: "neo4j",
			Database: "neo4j",
		},
	}
}

// ConfigPath returns the configuration file path under dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ".edbgen", "config.yaml")
}

// LoadConfig reads and parses the configuration file, then applies
// environment overrides. Missing files are an error; callers fall back
// to DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// SaveConfig writes the configuration file, creating its directory.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets EDBGEN_* environment variables take precedence
// over file values.
func (c *Config) applyEnvOverrides() {
	setIfEnv(&c.Input.Dir, "EDBGEN_INPUT_DIR")
	setIfEnv(&c.Output.Dir, "EDBGEN_OUTPUT_DIR")
	setIfEnv(&c.Storage.Mode, "EDBGEN_STORAGE")
	setIfEnv(&c.Neo4j.URI, "EDBGEN_NEO4J_URI")
	setIfEnv(&c.Neo4j.Username, "EDBGEN_NEO4J_USERNAME")
	setIfEnv(&c.Neo4j.Password, "EDBGEN_NEO4J_PASSWORD")
	setIfEnv(&c.Neo4j.Database, "EDBGEN_NEO4J_DATABASE")
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// loadConfigOrDefault is the lookup every subcommand starts with:
// use the file when present, defaults (plus env) otherwise.
func loadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg = DefaultConfig()
		cfg.applyEnvOverrides()
	}
	return cfg
}

// resolveDir picks the effective directory: explicit flag first, then
// config, then the current working directory. The cwd fallback lives
// here in the CLI layer; the conversion core never reads process-wide
// state.
func resolveDir(flagValue, configValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if configValue != "" {
		return configValue, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine working directory: %w", err)
	}
	return cwd, nil
}
