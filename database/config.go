package database

import (
	"fmt"
	"time"
)

// Config holds database configuration.
type Config struct {
	// Path is the sqlite database file. ":memory:" for tests.
	Path string `yaml:"path" mapstructure:"path"`
	// MaxRetries is how many connection attempts to make on startup.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`
	// MaxOpenConns bounds the connection pool.
	MaxOpenConns int `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	// MaxIdleConns bounds idle pooled connections.
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	// LogLevel is the GORM log level: silent, error, warn, info.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// SlowQueryThreshold marks queries slower than this as slow.
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" mapstructure:"slow_query_threshold"`
}

// ApplyDefaults applies default values to database configuration.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = "moodvoice.db"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 2
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.SlowQueryThreshold == 0 {
		c.SlowQueryThreshold = 200 * time.Millisecond
	}
}

// Validate validates database configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "silent", "error", "warn", "info":
		return nil
	default:
		return fmt.Errorf("database.log_level must be silent, error, warn, or info (got: %s)", c.LogLevel)
	}
}
