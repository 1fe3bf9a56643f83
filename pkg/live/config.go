package live

import (
	"log/slog"
	"time"
)

// Config holds transport tuning for a View and its sessions.
type Config struct {
	// ReadTimeout bounds how long a session waits for any client message
	// (pongs included) before the connection is considered dead.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single frame write.
	WriteTimeout time.Duration

	// PingInterval is how often sessions ping their client. Must be
	// shorter than ReadTimeout.
	PingInterval time.Duration

	// SendBuffer is the per-session outbound queue length. A client too
	// slow to drain it is disconnected rather than allowed to stall the
	// binder's thread.
	SendBuffer int

	// Logger receives session and update logs. Default: slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns the default transport configuration.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		PingInterval: 30 * time.Second,
		SendBuffer:   64,
		Logger:       slog.Default().With("component", "live"),
	}
}

// Option adjusts a View's configuration.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReadTimeout sets the session read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = d
	}
}

// WithWriteTimeout sets the per-frame write timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.WriteTimeout = d
	}
}

// WithPingInterval sets the keepalive ping interval.
func WithPingInterval(d time.Duration) Option {
	return func(c *Config) {
		c.PingInterval = d
	}
}

// WithSendBuffer sets the per-session outbound queue length.
func WithSendBuffer(n int) Option {
	return func(c *Config) {
		c.SendBuffer = n
	}
}
