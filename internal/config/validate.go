package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all fields carry usable values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	if c.Signaling.ProbeInterval <= 0 {
		return errors.New("signaling.probe_interval must be positive")
	}
	if c.Signaling.WriteTimeout <= 0 {
		return errors.New("signaling.write_timeout must be positive")
	}
	if c.Signaling.SendBuffer < 1 {
		return errors.New("signaling.send_buffer must be >= 1")
	}
	if c.Signaling.MaxMessageSize < 1 {
		return errors.New("signaling.max_message_size must be >= 1")
	}
	if c.Signaling.MaxChatLen < 1 {
		return errors.New("signaling.max_chat_len must be >= 1")
	}
	if c.Signaling.MaxNameLen < 1 {
		return errors.New("signaling.max_name_len must be >= 1")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
	}

	return nil
}
