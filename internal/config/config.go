// Package config loads and validates the relay server configuration.
//
// Configuration comes from a YAML file with ${VAR} environment expansion.
// Every field has a default, so the server also runs with no file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a relay instance.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Signaling SignalingConfig `yaml:"signaling"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	StaticDir   string   `yaml:"static_dir"`   // optional front-end mount, empty disables
	CORSOrigins []string `yaml:"cors_origins"` // allowed origins for the REST endpoints
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// SignalingConfig holds the room/relay engine settings.
type SignalingConfig struct {
	ProbeInterval  time.Duration `yaml:"probe_interval"`   // liveness sweep period
	WriteTimeout   time.Duration `yaml:"write_timeout"`    // per-frame write deadline
	SendBuffer     int           `yaml:"send_buffer"`      // outbound queue per connection
	MaxMessageSize int64         `yaml:"max_message_size"` // read limit in bytes
	MaxChatLen     int           `yaml:"max_chat_len"`     // chat text cap in runes
	MaxNameLen     int           `yaml:"max_name_len"`     // display name cap in runes
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
// An empty path yields the pure-default configuration.
func LoadAndValidate(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = &Config{}
	} else {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
