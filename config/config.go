// Package config loads client configuration from YAML or TOML files, with
// environment-variable fallbacks and an fsnotify-based hot-reload watcher.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds client and conversation settings.
type Config struct {
	// BaseURL is the server address. Falls back to OLLAMA_HOST, then
	// http://127.0.0.1:11434.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`

	// APIKey is the bearer token. Falls back to OLLAMA_API_KEY.
	APIKey string `json:"api_key" yaml:"api_key" toml:"api_key"`

	// Model is the default model for conversations.
	Model string `json:"model" yaml:"model" toml:"model"`

	// ToolTimeout is the per-call tool execution deadline.
	// Default: 30 seconds.
	ToolTimeout Duration `json:"tool_timeout" yaml:"tool_timeout" toml:"tool_timeout"`

	// MaxRounds bounds tool-dispatch rounds per conversation.
	// Zero means unbounded.
	MaxRounds int `json:"max_rounds" yaml:"max_rounds" toml:"max_rounds"`
}

// Default returns a Config with environment fallbacks and defaults applied.
func Default() Config {
	cfg := Config{
		BaseURL:     "http://127.0.0.1:11434",
		ToolTimeout: Duration(30 * time.Second),
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.BaseURL = host
	}
	if key := os.Getenv("OLLAMA_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	return cfg
}

// Load reads a config file, chosen by extension (.yaml, .yml, or .toml),
// on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for usability.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url %q: scheme must be http or https", c.BaseURL)
	}
	if c.ToolTimeout < 0 {
		return fmt.Errorf("tool_timeout must be >= 0")
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("max_rounds must be >= 0")
	}
	return nil
}

// Duration parses human-readable durations ("30s", "2m") from YAML and
// TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler (used by TOML).
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
