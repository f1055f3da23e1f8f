package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors ~/.dss/dss.toml.
type fileConfig struct {
	LogLevel    string   `toml:"log_level"`
	PromptColor string   `toml:"prompt_color"`
	NoColor     bool     `toml:"no_color"`
	HistoryFile string   `toml:"history_file"`
	Startup     []string `toml:"startup"`
}

// defaultConfigPath returns ~/.dss/dss.toml, or empty when no home
// directory is available.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dss", "dss.toml")
}

// loadFileConfig reads the TOML config file. The default path is optional
// and may be absent; a path given explicitly must exist and parse.
func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
	}
	if path == "" {
		return fc, nil
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return fc, fmt.Errorf("config %s: %w", path, err)
		}
		return fc, nil
	}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fc, fmt.Errorf("config %s: %w", path, err)
	}
	return fc, nil
}
