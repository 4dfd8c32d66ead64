// Package config loads askgen settings. Values are layered, lowest
// precedence first: built-in defaults, an optional YAML file, an optional
// .env file, ASKGEN_* environment variables and finally explicit overrides
// (usually command line flags).
package config

import (
	"time"

	"github.com/goliatone/go-askgen/internal/prompt"
)

// Config is the resolved generator configuration.
type Config struct {
	Patterns  []string `koanf:"patterns"   validate:"dive,required"`
	Types     []string `koanf:"types"      validate:"dive,required"`
	Theme     string   `koanf:"theme"      validate:"omitempty,oneof=none colorful default external"`
	Backend   string   `koanf:"backend"    validate:"oneof=survey huh"`
	Prefix    string   `koanf:"prefix"     validate:"required"`
	Must      bool     `koanf:"must"`
	Suffix    string   `koanf:"suffix"     validate:"required,endswith=.go"`
	Output    string   `koanf:"output"`
	Exclude   []string `koanf:"exclude"`
	BuildTags []string `koanf:"build_tags"`
	Templates string   `koanf:"templates"`
	DryRun    bool     `koanf:"dry_run"`

	Watch WatchConfig `koanf:"watch"`
	Log   LogConfig   `koanf:"log"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Debounce time.Duration `koanf:"debounce" validate:"min=0"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Patterns: []string{"."},
		Theme:    string(prompt.DefaultTheme),
		Backend:  string(prompt.BackendSurvey),
		Prefix:   "Ask",
		Suffix:   "_ask.go",
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ThemeChoice returns the configured default theme.
func (c *Config) ThemeChoice() (prompt.Theme, error) {
	if c.Theme == "" {
		return prompt.DefaultTheme, nil
	}
	return prompt.ParseTheme(c.Theme)
}

// BackendChoice returns the configured prompt backend.
func (c *Config) BackendChoice() (prompt.Backend, error) {
	return prompt.ParseBackend(c.Backend)
}
