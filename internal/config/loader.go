package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if ROVIA_CONFIG is set
//  3. env (prefix ROVIA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ROVIA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ROVIA_ADDR, ROVIA_MODEL_PATH, ...
	// Map env keys like ROVIA_MODEL_PATH -> model_path (flat keys).
	// Nested keys use double underscores: ROVIA_RANKING__MAX_RESULTS.
	envProvider := env.Provider("ROVIA_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rovia_")
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.EventLogPath == "" {
		return fmt.Errorf("%w: event_log_path must not be empty", ErrInvalidConfig)
	}
	if cfg.PartsLogPath == "" {
		return fmt.Errorf("%w: parts_log_path must not be empty", ErrInvalidConfig)
	}
	if cfg.ModelPath == "" {
		return fmt.Errorf("%w: model_path must not be empty", ErrInvalidConfig)
	}
	if cfg.DedupeSize <= 0 {
		return fmt.Errorf("%w: dedupe_size must be positive", ErrInvalidConfig)
	}
	if cfg.HomeLat < -90 || cfg.HomeLat > 90 || cfg.HomeLng < -180 || cfg.HomeLng > 180 {
		return fmt.Errorf("%w: home coordinates out of range", ErrInvalidConfig)
	}
	r := cfg.Ranking
	if r.MaxRating <= r.MinRating {
		return fmt.Errorf("%w: max_rating must exceed min_rating", ErrInvalidConfig)
	}
	if r.MaxDistanceKm <= 0 {
		return fmt.Errorf("%w: max_distance_km must be positive", ErrInvalidConfig)
	}
	if r.MaxResults <= 0 {
		return fmt.Errorf("%w: max_results must be positive", ErrInvalidConfig)
	}
	return nil
}
