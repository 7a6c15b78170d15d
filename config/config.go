// Package config loads the YAML bot configuration used by the rolebot
// command: identity, gateway endpoint, plugins to compose or preload, and
// logging preferences.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sveinns/rolebot/logging"
)

// Logging holds log output preferences.
type Logging struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// Config is the full bot configuration.
type Config struct {
	// Nick is the bot's identity, used by the addressed policy.
	Nick string `yaml:"nick"`
	// Gateway is the websocket URL of the chat gateway.
	Gateway string `yaml:"gateway"`
	// Units are composed into the bot type at startup, by registry name.
	Units []string `yaml:"units"`
	// Trusted seeds the oping unit's trust list.
	Trusted []string `yaml:"trusted"`
	// Logging configures log output.
	Logging Logging `yaml:"logging"`
}

// Default returns a runnable baseline configuration.
func Default() *Config {
	return &Config{
		Nick:    "rolebot",
		Units:   []string{"loader"},
		Logging: Logging{Level: "info", Format: "text"},
	}
}

// Load reads and validates a YAML configuration file. Unknown keys are
// rejected so typos fail loudly.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if c.Nick == "" {
		return fmt.Errorf("nick must not be empty")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// LogLevel maps the configured level string to a logging.LogLevel.
func (c *Config) LogLevel() logging.LogLevel {
	return logging.ParseLevel(c.Logging.Level)
}
