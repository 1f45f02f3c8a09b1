package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAddr           = ":8080"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultProbeInterval  = 30 * time.Second
	DefaultWriteTimeout   = 10 * time.Second
	DefaultSendBuffer     = 256
	DefaultMaxMessageSize = 64 * 1024
	DefaultMaxChatLen     = 2000
	DefaultMaxNameLen     = 40
	DefaultMetricsPath    = "/metrics"
)

func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}

	// Signaling defaults
	if c.Signaling.ProbeInterval == 0 {
		c.Signaling.ProbeInterval = DefaultProbeInterval
	}
	if c.Signaling.WriteTimeout == 0 {
		c.Signaling.WriteTimeout = DefaultWriteTimeout
	}
	if c.Signaling.SendBuffer == 0 {
		c.Signaling.SendBuffer = DefaultSendBuffer
	}
	if c.Signaling.MaxMessageSize == 0 {
		c.Signaling.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.Signaling.MaxChatLen == 0 {
		c.Signaling.MaxChatLen = DefaultMaxChatLen
	}
	if c.Signaling.MaxNameLen == 0 {
		c.Signaling.MaxNameLen = DefaultMaxNameLen
	}

	// Metrics defaults
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}
