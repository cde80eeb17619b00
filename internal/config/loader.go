package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables that locate the optional config sources.
const (
	envPrefix  = "PACER_"
	EnvConfig  = "PACER_CONFIG"
	envEnvFile = "PACER_ENV_FILE"
)

// Load builds a Config by layering defaults, optional .env file, optional
// YAML file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. .env file if PACER_ENV_FILE is set (only fills unset variables)
//  3. file (YAML) if PACER_CONFIG is set
//  4. env (prefix PACER_)
func Load(_ context.Context) (*Config, error) {
	base := New()
	k := koanf.New(".")

	// The .env file only populates the process environment, so it must run
	// before PACER_CONFIG is read and before the env provider.
	if path := os.Getenv(envEnvFile); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("%w: env file %s: %w", ErrLoadConfig, path, err)
		}
	}

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Map env keys like PACER_RATING_GOOD -> rating_good (flat keys).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
