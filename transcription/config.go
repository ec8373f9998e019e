package transcription

import (
	"fmt"
	"time"
)

// Backend selection values for Config.Backend.
const (
	BackendAuto   = "auto"
	BackendOpenAI = "openai"
	BackendLocal  = "local"
)

// Config holds transcription engine configuration.
type Config struct {
	// Backend selects the strategy: auto, openai, or local. With auto the
	// remote API is chosen when its credential is present.
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Language is the default language hint passed to backends.
	Language string `yaml:"language" mapstructure:"language"`
	// MaxConcurrent bounds simultaneous inference calls.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`

	OpenAI OpenAIConfig `yaml:"openai" mapstructure:"openai"`
	Local  LocalConfig  `yaml:"local" mapstructure:"local"`
}

// OpenAIConfig configures the remote speech-to-text API backend.
type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LocalConfig configures the faster-whisper sidecar backend.
type LocalConfig struct {
	URL   string `yaml:"url" mapstructure:"url"`
	Model string `yaml:"model" mapstructure:"model"`
	// Device overrides accelerator probing ("cuda", "rocm", "cpu").
	// Empty means probe.
	Device string `yaml:"device" mapstructure:"device"`
	// ComputeType overrides the numeric precision paired with the device.
	// Empty means derive from the device.
	ComputeType string        `yaml:"compute_type" mapstructure:"compute_type"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults applies default values to transcription configuration.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendAuto
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 2
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "whisper-1"
	}
	if c.OpenAI.Timeout == 0 {
		c.OpenAI.Timeout = 120 * time.Second
	}
	if c.Local.URL == "" {
		c.Local.URL = "http://localhost:8387"
	}
	if c.Local.Model == "" {
		c.Local.Model = "base"
	}
	if c.Local.Timeout == 0 {
		c.Local.Timeout = 120 * time.Second
	}
}

// Validate validates transcription configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendOpenAI, BackendLocal:
	default:
		return fmt.Errorf("transcription.backend must be auto, openai, or local (got: %s)", c.Backend)
	}
	if c.Backend == BackendOpenAI && c.OpenAI.APIKey == "" {
		return fmt.Errorf("transcription.openai.api_key is required when backend is openai")
	}
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("transcription.max_concurrent must not be negative")
	}
	return nil
}
