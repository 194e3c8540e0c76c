// Package config loads application configuration with the precedence
// environment > YAML file > built-in defaults. A .env file in the working
// directory is folded into the environment before processing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "gscclean/internal/errors"
)

// envPrefix namespaces the environment variables, e.g. GSCCLEAN_SERVER_PORT.
const envPrefix = "GSCCLEAN"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Limits  LimitsConfig  `yaml:"limits" envconfig:"LIMITS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// LimitsConfig bounds the upload surface.
type LimitsConfig struct {
	MaxUploadBytes int64   `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" validate:"min=1"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" validate:"min=0"`
	RateLimitBurst int     `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" validate:"min=0"`
	MaxPreviewRows int     `yaml:"max_preview_rows" envconfig:"MAX_PREVIEW_ROWS" validate:"min=1"`
}

// Default returns the built-in configuration. Defaults live here rather than
// in struct tags so that file values are not clobbered when the environment
// is re-applied on top of them.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Limits: LimitsConfig{
			MaxUploadBytes: 10 * 1024 * 1024,
			RateLimitRPS:   10,
			RateLimitBurst: 20,
			MaxPreviewRows: 100,
		},
	}
}

// Load builds the configuration: defaults, overlaid by the YAML file named
// by GSCCLEAN_CONFIG_FILE (if set), overlaid by environment variables.
func Load() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv(envPrefix + "_CONFIG_FILE"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// loadFromFile overlays values from a YAML file; only keys present in the
// file are touched.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError(fmt.Sprintf("cannot read config file %s", path), err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return apperrors.NewConfigError(fmt.Sprintf("cannot parse config file %s", path), err)
	}
	return nil
}
