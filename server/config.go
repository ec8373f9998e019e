package server

import "fmt"

// Config holds HTTP server configuration.
type Config struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// Timeouts are in seconds.
	ReadTimeout  int `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout int `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  int `yaml:"idle_timeout" mapstructure:"idle_timeout"`

	Auth AuthConfig `yaml:"auth" mapstructure:"auth"`
}

// AuthConfig configures the bearer-token middleware.
type AuthConfig struct {
	// Enabled controls whether requests must carry a valid token. When
	// disabled the principal is taken from the X-User-ID header (dev only).
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// JWTSecret is the HS256 signing secret.
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

// ApplyDefaults applies default values to server configuration.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 120
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 120
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 120
	}
}

// Validate validates server configuration.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got: %d)", c.Port)
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("server.auth.jwt_secret is required when auth is enabled")
	}
	return nil
}
