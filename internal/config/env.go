package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from POCKETDO_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	track := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("POCKETDO_DATA_DIR"); v != "" {
		cfg.DataDir = v
		track("data_dir")
	}
	if v := os.Getenv("POCKETDO_BACKEND"); v != "" {
		cfg.Backend = v
		track("backend")
	}
	if v := os.Getenv("POCKETDO_ID_FORMAT"); v != "" {
		cfg.IDFormat = v
		track("id_format")
	}
	if v := os.Getenv("POCKETDO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		track("log_level")
	}
	if v := os.Getenv("POCKETDO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		track("log_format")
	}
	if v := os.Getenv("POCKETDO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		track("log_timestamps")
	}
	if v := os.Getenv("POCKETDO_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		track("log_caller")
	}
}

// boolFromString parses common truthy spellings.
func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "y":
		return true
	default:
		return false
	}
}
