// Package config loads CLI configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// Config drives the formstate CLI. Flags override these values.
type Config struct {
	Name         string   `env:"FORMSTATE_NAME" envDefault:"form"`
	Seed         string   `env:"FORMSTATE_SEED"`
	OpenAPI      string   `env:"FORMSTATE_OPENAPI"`
	Operation    string   `env:"FORMSTATE_OPERATION"`
	Output       string   `env:"FORMSTATE_OUTPUT"`
	SecretFields []string `env:"FORMSTATE_SECRET_FIELDS" envSeparator:","`
	MaxRounds    int      `env:"FORMSTATE_MAX_ROUNDS" envDefault:"3"`
	AssumeYes    bool     `env:"FORMSTATE_YES"`
	LogLevel     string   `env:"FORMSTATE_LOG_LEVEL" envDefault:"info"`
	Dev          bool     `env:"FORMSTATE_DEV"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom parses the supplied environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks that exactly one declaration source is configured.
func (c Config) Validate() error {
	seed := strings.TrimSpace(c.Seed)
	document := strings.TrimSpace(c.OpenAPI)
	switch {
	case seed == "" && document == "":
		return errors.New("config: a seed file or an OpenAPI document is required")
	case seed != "" && document != "":
		return errors.New("config: seed and OpenAPI sources are mutually exclusive")
	case document != "" && strings.TrimSpace(c.Operation) == "":
		return errors.New("config: an operation id is required with an OpenAPI document")
	case strings.TrimSpace(c.Name) == "":
		return errors.New("config: form name is required")
	}
	return nil
}

// Logger builds the zap logger described by the config.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
