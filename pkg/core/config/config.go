// ============================================================================
// cliparse - Argument Value Tokenizer
// ============================================================================
//
// Package:     config
// Description: Application configuration loaded from TOML or YAML
// Author:      Mike Stoffels
// Created:     2025-02-18
// License:     MIT
// ============================================================================

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/cliparse/foundation/core/error"
	mdwlog "github.com/msto63/cliparse/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "CLIPARSE_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General   GeneralConfig   `toml:"general" yaml:"general"`
	Tokenizer TokenizerConfig `toml:"tokenizer" yaml:"tokenizer"`
	Output    OutputConfig    `toml:"output" yaml:"output"`
	History   HistoryConfig   `toml:"history" yaml:"history"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// TokenizerConfig holds tokenizer defaults
type TokenizerConfig struct {
	MaxInputLength int    `toml:"max_input_length" yaml:"max_input_length"`
	Deactivated    string `toml:"deactivated" yaml:"deactivated"`
	Closer         string `toml:"closer" yaml:"closer"`
	Trace          bool   `toml:"trace" yaml:"trace"`
}

// OutputConfig holds settings for printing results
type OutputConfig struct {
	Format  string `toml:"format" yaml:"format"` // "text" or "json"
	NoColor bool   `toml:"no_color" yaml:"no_color"`
}

// HistoryConfig holds settings of the input history
type HistoryConfig struct {
	Disabled    bool     `toml:"disabled" yaml:"disabled"`
	Path        string   `toml:"path" yaml:"path"`
	Limit       int      `toml:"limit" yaml:"limit"`
	BusyTimeout Duration `toml:"busy_timeout" yaml:"busy_timeout"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.Newf("config file not found: %s", path).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.Load")
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, parseError(path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, parseError(path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, parseError(path, err)
		}
	default:
		return nil, mdwerror.Newf("unsupported config format %q", ext).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in paths
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the CLIPARSE_CONFIG environment
// variable or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		// Try default locations
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, mdwerror.New("no config file found, set CLIPARSE_CONFIG or create cliparse.toml").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// DefaultPaths lists the locations searched by LoadFromEnv
func DefaultPaths() []string {
	return []string{
		"./cliparse.toml",
		"./cliparse.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/cliparse/config.toml"),
		filepath.Join(os.Getenv("HOME"), ".config/cliparse/config.yaml"),
	}
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat)
	}
	if c.Tokenizer.MaxInputLength < 0 {
		return invalid("tokenizer.max_input_length", c.Tokenizer.MaxInputLength)
	}
	if _, err := c.Tokenizer.CloserRune(); err != nil {
		return err
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return invalid("output.format", c.Output.Format)
	}
	if c.History.Limit < 0 {
		return invalid("history.limit", c.History.Limit)
	}
	return nil
}

// CloserRune returns the configured closing bracket, or 0 when none is set
func (t TokenizerConfig) CloserRune() (rune, error) {
	if t.Closer == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(t.Closer)
	if size != len(t.Closer) || (r != ']' && r != '}') {
		return 0, invalid("tokenizer.closer", t.Closer)
	}
	return r, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.DataDir == "" {
		c.General.DataDir = filepath.Join(os.Getenv("HOME"), ".local/share/cliparse")
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Tokenizer
	if c.Tokenizer.MaxInputLength == 0 {
		c.Tokenizer.MaxInputLength = 4096
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}
	if c.History.Limit == 0 {
		c.History.Limit = 500
	}
	if c.History.BusyTimeout.Duration == 0 {
		c.History.BusyTimeout.Duration = 5 * time.Second
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

func parseError(path string, err error) error {
	return mdwerror.Wrap(err, "failed to parse config").
		WithCode(mdwerror.CodeConfigError).
		WithOperation("config.Load").
		WithDetail("path", path)
}

func invalid(key string, value interface{}) error {
	return mdwerror.Newf("invalid value for %s: %v", key, value).
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail("key", key)
}
