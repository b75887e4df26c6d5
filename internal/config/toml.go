// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice   PracticeConfig   `toml:"practice"`
	Dictionary DictionaryConfig `toml:"dictionary"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Duration      *int    `toml:"duration"`
	Mode          *string `toml:"mode"`
	MinWords      *int    `toml:"min-words"`
	MaxWords      *int    `toml:"max-words"`
	OnExhaust     *string `toml:"on-exhaust"`
	ComposedInput *string `toml:"composed-input"`
	Theme         *string `toml:"theme"`
	EasyWords     *string `toml:"easy-words"`
	AdvancedWords *string `toml:"advanced-words"`
}

// DictionaryConfig maps remote word service settings.
type DictionaryConfig struct {
	Endpoint       *string `toml:"endpoint"`
	APIKey         *string `toml:"api-key"`
	MinCorpusCount *int    `toml:"min-corpus-count"`
	MinLength      *int    `toml:"min-length"`
	MaxLength      *int    `toml:"max-length"`
	Timeout        *string `toml:"timeout"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
