package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application settings (in-memory representation).
// Last-used values are persisted by the internal/db package; a YAML file and
// environment variables can override them per run.
type Config struct {
	OriginSystem      string  `yaml:"origin_system"`
	SourceRadius      float64 `yaml:"source_radius"`      // light years around origin to buy from
	DestinationRadius float64 `yaml:"destination_radius"` // light years around origin to sell to
	TopRoutes         int     `yaml:"top_routes"`         // how many route candidates to keep
	Workers           int     `yaml:"workers"`            // 0 = one per CPU
	ParallelThreshold int     `yaml:"parallel_threshold"` // pair count above which to parallelize
	IncludePermit     bool    `yaml:"include_permit"`     // include permit-locked systems
	KeepUnprofitable  bool    `yaml:"keep_unprofitable"`  // keep zero-profit pairs in the ranking
	DataDir           string  `yaml:"data_dir"`
	DumpBaseURL       string  `yaml:"dump_base_url"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		OriginSystem:      "Lave",
		SourceRadius:      40,
		DestinationRadius: 40,
		TopRoutes:         10,
		ParallelThreshold: 100_000,
		DataDir:           "data",
		DumpBaseURL:       "https://eddb.io/archive/v6",
	}
}

// Load reads configuration from an optional .env file and an optional YAML
// file, then applies environment overrides and defaults. A missing config
// file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	// Load .env if present (silently skipped when absent)
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %q: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides values from environment variables when present.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EDTP_ORIGIN"); v != "" {
		cfg.OriginSystem = v
	}
	if v := os.Getenv("EDTP_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("EDTP_DUMP_URL"); v != "" {
		cfg.DumpBaseURL = v
	}
	if v := os.Getenv("EDTP_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
}

// setDefaults backfills required values that are zero after file/env merging.
func setDefaults(cfg *Config) {
	if cfg.OriginSystem == "" {
		cfg.OriginSystem = "Lave"
	}
	if cfg.SourceRadius <= 0 {
		cfg.SourceRadius = 40
	}
	if cfg.DestinationRadius <= 0 {
		cfg.DestinationRadius = 40
	}
	if cfg.TopRoutes <= 0 {
		cfg.TopRoutes = 10
	}
	if cfg.ParallelThreshold <= 0 {
		cfg.ParallelThreshold = 100_000
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.DumpBaseURL == "" {
		cfg.DumpBaseURL = "https://eddb.io/archive/v6"
	}
}
