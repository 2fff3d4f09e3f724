// Package config handles configuration loading and validation for refract.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/refract/internal/core/highlight"
	"github.com/colonyops/refract/internal/core/keymap"
	"github.com/colonyops/refract/internal/core/search"
	"github.com/colonyops/refract/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Theme       string                       `yaml:"theme"`
	SyntaxTheme string                       `yaml:"syntax_theme"`
	GutterWidth int                          `yaml:"gutter_width"`
	ScrollOff   int                          `yaml:"scrolloff"`
	AutoInfo    bool                         `yaml:"auto_info"`
	GitPath     string                       `yaml:"git_path"`
	Search      SearchConfig                 `yaml:"search"`
	Keys        map[keymap.Mode]*keymap.Node `yaml:"keys"`

	// keymaps is the merge of the built-in keymaps and Keys, built by Load.
	keymaps keymap.Keymaps
}

// SearchConfig holds defaults for the search that feeds the refactor view.
type SearchConfig struct {
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	Hidden      bool     `yaml:"hidden"`
	UseGit      bool     `yaml:"use_git"`
	MaxFileSize int64    `yaml:"max_file_size"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:       styles.DefaultTheme,
		SyntaxTheme: highlight.DefaultSyntaxTheme,
		GutterWidth: 15,
		ScrollOff:   5,
		AutoInfo:    true,
		GitPath:     "git",
		Search: SearchConfig{
			Include:     []string{},
			Exclude:     []string{},
			UseGit:      true,
			MaxFileSize: search.DefaultMaxFileSize,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Merge user keys into defaults (user config overrides defaults)
	cfg.keymaps = keymap.Default().Merge(cfg.Keys)

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.SyntaxTheme == "" {
		c.SyntaxTheme = defaults.SyntaxTheme
	}
	if c.GutterWidth == 0 {
		c.GutterWidth = defaults.GutterWidth
	}
	if c.GitPath == "" {
		c.GitPath = defaults.GitPath
	}
	if c.Search.MaxFileSize == 0 {
		c.Search.MaxFileSize = defaults.Search.MaxFileSize
	}
}

// Keymaps returns the effective keymaps: the built-in bindings with the
// user's keys merged over them.
func (c *Config) Keymaps() keymap.Keymaps {
	if c.keymaps == nil {
		c.keymaps = keymap.Default().Merge(c.Keys)
	}
	return c.keymaps
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.GitPath == "" {
		return fmt.Errorf("git_path cannot be empty")
	}

	if c.GutterWidth < 1 {
		return fmt.Errorf("gutter_width must be at least 1")
	}

	if c.ScrollOff < 0 {
		return fmt.Errorf("scrolloff cannot be negative")
	}

	if c.Search.MaxFileSize < 0 {
		return fmt.Errorf("search.max_file_size cannot be negative")
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}

	for mode, node := range c.Keys {
		if !isValidMode(mode) {
			return fmt.Errorf("keys: unknown mode %q", mode)
		}
		if node == nil {
			return fmt.Errorf("keys.%s: keymap must be a mapping", mode)
		}
	}

	return nil
}

func isValidMode(mode keymap.Mode) bool {
	for _, m := range keymap.Modes {
		if m == mode {
			return true
		}
	}
	return false
}
