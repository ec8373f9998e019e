package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g.
// MOODVOICE_SERVER_PORT=9090 overrides server.port.
const envPrefix = "MOODVOICE"

// configSearchPaths are checked in order when no explicit path is given.
var configSearchPaths = []string{
	"./config.yml",
	"./cmd/moodvoice/config.yml",
	"./config/config.yml",
}

// Load reads configuration from the given YAML file (or the first search
// path that exists), layers a .env file and environment variables on top,
// applies defaults, and validates the result.
func Load(path string) (*Config, error) {
	// .env is best-effort: absence is not an error.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials keep their conventional unprefixed names as fallbacks.
	_ = v.BindEnv("transcription.openai.api_key", envPrefix+"_TRANSCRIPTION_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("emotion.predict_url", envPrefix+"_EMOTION_PREDICT_URL", "EMOTION_API_URL")
	_ = v.BindEnv("server.auth.jwt_secret", envPrefix+"_SERVER_AUTH_JWT_SECRET", "JWT_SECRET")

	if path == "" {
		for _, candidate := range configSearchPaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
