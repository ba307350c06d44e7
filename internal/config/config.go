// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error kinds.
package config

import "github.com/roviahq/rovia/internal/domain/feature"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// EventLogPath is the append-only JSONL file for ranking events.
	EventLogPath string `koanf:"event_log_path"`

	// PartsLogPath is the append-only JSONL file for spare-parts events.
	PartsLogPath string `koanf:"parts_log_path"`

	// CatalogPath optionally points at a YAML candidate catalog. Empty
	// means the built-in candidate set.
	CatalogPath string `koanf:"catalog_path"`

	// ModelPath is the well-known location of the trained model artifact.
	ModelPath string `koanf:"model_path"`

	// DatasetDir is where offline jobs write dataset files.
	DatasetDir string `koanf:"dataset_dir"`

	// DedupeSize bounds the duplicate-click cache.
	DedupeSize int `koanf:"dedupe_size"`

	// HomeLat and HomeLng locate requests that omit coordinates.
	HomeLat float64 `koanf:"home_lat"`
	HomeLng float64 `koanf:"home_lng"`

	// Ranking holds the feature weights and bounds.
	Ranking feature.Config `koanf:"ranking"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":9080",
		EventLogPath: "data/events.jsonl",
		PartsLogPath: "data/parts_events.jsonl",
		CatalogPath:  "",
		ModelPath:    "models/ranker.json",
		DatasetDir:   "data/datasets",
		DedupeSize:   100_000,
		HomeLat:      52.5200,
		HomeLng:      13.4050,
		Ranking:      feature.DefaultConfig(),
	}
}
