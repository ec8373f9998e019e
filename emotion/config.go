package emotion

import (
	"fmt"
	"time"
)

// Backend selection values for Config.Backend.
const (
	BackendPredict = "predict"
	BackendOllama  = "ollama"
)

// Config holds emotion classifier configuration.
type Config struct {
	// Backend selects the classifier: predict (HTTP predict API) or ollama.
	Backend string `yaml:"backend" mapstructure:"backend"`
	// PredictURL is the endpoint of the predict-style classifier.
	PredictURL string `yaml:"predict_url" mapstructure:"predict_url"`
	// Timeout bounds a single classifier call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	Ollama OllamaConfig `yaml:"ollama" mapstructure:"ollama"`
}

// OllamaConfig configures the LLM-backed classifier.
type OllamaConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults applies default values to classifier configuration.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendPredict
	}
	if c.PredictURL == "" {
		c.PredictURL = "http://localhost:5000/predict"
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = "llama3"
	}
	if c.Ollama.Timeout == 0 {
		c.Ollama.Timeout = 60 * time.Second
	}
}

// Validate validates classifier configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendPredict, BackendOllama:
		return nil
	default:
		return fmt.Errorf("emotion.backend must be predict or ollama (got: %s)", c.Backend)
	}
}
