// Package config loads the ambient configuration for the kvwal daemon and
// CLI: the store directory and a handful of REPL conveniences. The core
// store package never reads a config file itself — it only accepts a
// store.Options struct — so this package exists purely for the outer
// binaries.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of kvwal.yaml.
type Config struct {
	// Dir is the directory holding WAL files. Defaults to "./data".
	Dir string `yaml:"dir"`
	// HistoryFile is where the REPL persists command history. Defaults to
	// ~/.kvwal_history.
	HistoryFile string `yaml:"history_file,omitempty"`
	// Prompt is the REPL prompt string. Defaults to "kvwal> ".
	Prompt string `yaml:"prompt,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Dir:    "./data",
		Prompt: "kvwal> ",
	}
}

// Load reads path and merges it over Default(). A missing file is not an
// error: Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fileCfg.Dir != "" {
		cfg.Dir = fileCfg.Dir
	}
	if fileCfg.HistoryFile != "" {
		cfg.HistoryFile = fileCfg.HistoryFile
	}
	if fileCfg.Prompt != "" {
		cfg.Prompt = fileCfg.Prompt
	}

	return cfg, nil
}

// DefaultPath returns ~/.kvwal.yaml, or "" if the home directory cannot be
// determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kvwal.yaml")
}

// HistoryPath resolves cfg.HistoryFile, defaulting to ~/.kvwal_history.
func (c Config) HistoryPath() string {
	if c.HistoryFile != "" {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kvwal_history")
}
