// Package config loads and saves qtab's YAML settings file, following
// the teacher's load/default/save shape (see appconfig.go).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable named in spec §4.2/§5.
type Config struct {
	SampleSize      int      `yaml:"sample_size"`
	MaxPinned       int      `yaml:"max_pinned"`
	DebounceMS      int      `yaml:"debounce_ms"`
	NullTokens      []string `yaml:"null_tokens"`
	CaseInsensitive bool     `yaml:"case_insensitive"`
	UndoDepth       int      `yaml:"undo_depth"`
	HistoryLimit    int      `yaml:"history_limit"`
	Theme           string   `yaml:"theme"`
}

const (
	appConfigDir  = ".config/qtab"
	appConfigFile = "config.yaml"
)

// Default returns the configuration qtab runs with when no config
// file exists yet.
func Default() *Config {
	return &Config{
		SampleSize:      100,
		MaxPinned:       4,
		DebounceMS:      300,
		NullTokens:      []string{},
		CaseInsensitive: true,
		UndoDepth:       50,
		HistoryLimit:    10,
		Theme:           "default",
	}
}

// Path returns ~/.config/qtab/config.yaml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, appConfigDir, appConfigFile), nil
}

// Load reads the config file at path, falling back to Default() if it
// does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from user home dir
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	content := append([]byte("# qtab configuration\n\n"), data...)
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.SampleSize <= 0 {
		return &ValidationError{Field: "sample_size", Reason: "must be positive"}
	}
	if c.MaxPinned <= 0 {
		return &ValidationError{Field: "max_pinned", Reason: "must be positive"}
	}
	if c.UndoDepth <= 0 {
		return &ValidationError{Field: "undo_depth", Reason: "must be positive"}
	}
	return nil
}
