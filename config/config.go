package config

import (
	"fmt"

	"github.com/skillsenselab/moodvoice/audio"
	"github.com/skillsenselab/moodvoice/database"
	"github.com/skillsenselab/moodvoice/emotion"
	"github.com/skillsenselab/moodvoice/logger"
	"github.com/skillsenselab/moodvoice/observability"
	"github.com/skillsenselab/moodvoice/server"
	"github.com/skillsenselab/moodvoice/transcription"
)

// Config is the full service configuration.
type Config struct {
	Service       ServiceConfig        `yaml:"service" mapstructure:"service"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Audio         audio.Config         `yaml:"audio" mapstructure:"audio"`
	Transcription transcription.Config `yaml:"transcription" mapstructure:"transcription"`
	Emotion       emotion.Config       `yaml:"emotion" mapstructure:"emotion"`
	Tracing       observability.Config `yaml:"tracing" mapstructure:"tracing"`
}

// ServiceConfig identifies the service instance.
type ServiceConfig struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "moodvoice"
	}
	if c.Service.Environment == "" {
		c.Service.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Audio.ApplyDefaults()
	c.Transcription.ApplyDefaults()
	c.Emotion.ApplyDefaults()
	c.Tracing.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := validateStruct(c.Service); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Audio.Validate(); err != nil {
		return err
	}
	if err := c.Transcription.Validate(); err != nil {
		return err
	}
	return c.Emotion.Validate()
}
