// Package config loads and validates the gridbind.json server configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "gridbind.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultStreamPath is the default websocket endpoint path.
	DefaultStreamPath = "/stream"

	// DefaultMetricsPath is the default Prometheus endpoint path.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete gridbind.json configuration.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Feed contains demo feed settings.
	Feed FeedConfig `json:"feed,omitempty"`

	// Log contains logging settings.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// StreamPath is the websocket endpoint path.
	StreamPath string `json:"streamPath,omitempty"`

	// MetricsPath is the Prometheus endpoint path.
	MetricsPath string `json:"metricsPath,omitempty"`
}

// FeedConfig contains demo feed settings.
type FeedConfig struct {
	// Sections is the number of sections in the demo feed.
	Sections int `json:"sections,omitempty"`

	// Rows is the initial number of rows per section.
	Rows int `json:"rows,omitempty"`

	// Interval is the update interval (e.g. "2s").
	Interval string `json:"interval,omitempty"`

	// Seed is the random seed for the feed. Zero means time-based.
	Seed int64 `json:"seed,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `json:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        DefaultHost,
			Port:        DefaultPort,
			StreamPath:  DefaultStreamPath,
			MetricsPath: DefaultMetricsPath,
		},
		Feed: FeedConfig{
			Sections: 3,
			Rows:     5,
			Interval: "2s",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for gridbind.json in the directory. A missing file is not an
// error: defaults are returned.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from, or "" if the
// config holds defaults only.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.StreamPath == "" {
		c.Server.StreamPath = DefaultStreamPath
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Feed.Sections == 0 {
		c.Feed.Sections = 3
	}
	if c.Feed.Rows == 0 {
		c.Feed.Rows = 5
	}
	if c.Feed.Interval == "" {
		c.Feed.Interval = "2s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Feed.Sections < 1 {
		return fmt.Errorf("feed.sections must be at least 1, got %d", c.Feed.Sections)
	}
	if c.Feed.Rows < 0 {
		return fmt.Errorf("feed.rows must not be negative, got %d", c.Feed.Rows)
	}
	if _, err := time.ParseDuration(c.Feed.Interval); err != nil {
		return fmt.Errorf("feed.interval: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Address returns the listen address string for the server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// UpdateInterval returns the parsed feed update interval.
func (c *Config) UpdateInterval() time.Duration {
	d, err := time.ParseDuration(c.Feed.Interval)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
