package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all CLI configuration.
// Priority: env vars > .ostkit.yaml > defaults.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Format   FormatConfig `yaml:"format"`
	Query    QueryConfig  `yaml:"query"`
}

// FormatConfig controls the canonical serialization style.
type FormatConfig struct {
	Shorthand           bool `yaml:"shorthand"`
	IncludeDescriptions bool `yaml:"include_descriptions"`
}

// QueryConfig sets query defaults.
type QueryConfig struct {
	Language string `yaml:"language"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: "info",
		Format: FormatConfig{
			Shorthand:           true,
			IncludeDescriptions: true,
		},
		Query: QueryConfig{Language: "expr"},
	}
}

func loadConfig(path string) Config {
	cfg := defaultConfig()

	// Layer 2: config file (ignore if missing).
	if path == "" {
		path = ".ostkit.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, &cfg)
	}

	// Layer 3: env vars override.
	if v := os.Getenv("OSTKIT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("OSTKIT_QUERY_LANGUAGE"); v != "" {
		cfg.Query.Language = v
	}
	if v := os.Getenv("OSTKIT_FORMAT_SHORTHAND"); v != "" {
		cfg.Format.Shorthand = v == "true" || v == "1"
	}
	if v := os.Getenv("OSTKIT_FORMAT_DESCRIPTIONS"); v != "" {
		cfg.Format.IncludeDescriptions = v == "true" || v == "1"
	}

	return cfg
}
