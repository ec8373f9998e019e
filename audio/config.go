package audio

import (
	"fmt"
	"time"
)

// Config holds audio normalization configuration.
type Config struct {
	// MinSizeBytes rejects uploads too short to contain speech.
	MinSizeBytes int64 `yaml:"min_size_bytes" mapstructure:"min_size_bytes"`
	// MaxSizeBytes rejects uploads above this cap before any decode attempt.
	MaxSizeBytes int64 `yaml:"max_size_bytes" mapstructure:"max_size_bytes"`
	// FFmpegBinary is the decoder executable (resolved via PATH).
	FFmpegBinary string `yaml:"ffmpeg_binary" mapstructure:"ffmpeg_binary"`
	// DecodeTimeout bounds a single ffmpeg invocation.
	DecodeTimeout time.Duration `yaml:"decode_timeout" mapstructure:"decode_timeout"`
	// TempDir is where intermediate files are written. Empty means os.TempDir.
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// ApplyDefaults applies default values to audio configuration.
func (c *Config) ApplyDefaults() {
	if c.MinSizeBytes == 0 {
		c.MinSizeBytes = 1024
	}
	if c.MaxSizeBytes == 0 {
		c.MaxSizeBytes = 25 * 1024 * 1024
	}
	if c.FFmpegBinary == "" {
		c.FFmpegBinary = "ffmpeg"
	}
	if c.DecodeTimeout == 0 {
		c.DecodeTimeout = 60 * time.Second
	}
}

// Validate validates audio configuration.
func (c *Config) Validate() error {
	if c.MinSizeBytes >= c.MaxSizeBytes {
		return fmt.Errorf("audio.min_size_bytes (%d) must be below audio.max_size_bytes (%d)", c.MinSizeBytes, c.MaxSizeBytes)
	}
	return nil
}
