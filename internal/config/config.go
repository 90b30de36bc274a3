// Package config defines the application configuration and loads it from
// defaults, an optional YAML file and STUDYBUDDY_* environment variables.
package config

import (
	"github.com/abhisek/studybuddy/internal/auth"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// Config is the root configuration.
type Config struct {
	LLM    llm.Config      `mapstructure:"llm"`
	Study  studygen.Config `mapstructure:"study"`
	Auth   auth.Config     `mapstructure:"auth"`
	Store  StoreConfig     `mapstructure:"store"`
	Log    LogConfig       `mapstructure:"log"`
	Server ServerConfig    `mapstructure:"server"`
}

// StoreConfig controls the LLM event store.
type StoreConfig struct {
	// Path of the SQLite file. Empty resolves to store.DefaultDBPath().
	Path string `mapstructure:"path"`

	// Disabled skips opening the store; LLM requests are only logged.
	Disabled bool `mapstructure:"disabled"`

	// CaptureBodies stores full request and response text with each event.
	CaptureBodies bool `mapstructure:"capture_bodies"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// Logger converts the log section to logger.Config.
func (c LogConfig) Logger() logger.Config {
	return logger.Config{Level: c.Level, File: c.File}
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr" validate:"required,hostname_port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
