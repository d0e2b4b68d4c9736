package config

import (
	"github.com/nibzard/pocketdo/internal/appdir"
	"github.com/nibzard/pocketdo/internal/kv"
	"github.com/nibzard/pocketdo/internal/todo"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultBackend   = kv.BackendFile
	DefaultIDFormat  = todo.IDFormatClock
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultDataDir is the data directory before ~ expansion.
var DefaultDataDir = "~/" + appdir.Dir

// Config holds the full configuration for pocketdo.
type Config struct {
	// Storage
	DataDir  string `toml:"data_dir"`
	Backend  string `toml:"backend"`
	IDFormat string `toml:"id_format"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Config files that were applied, lowest priority first (computed)
	Files []string `toml:"-"`
}

// LogDir returns the directory per-run log files are written to.
func (c *Config) LogDir() string {
	return appdir.LogDir(c.DataDir)
}

// configFields returns the configurable field names used for source tracking.
func configFields() []string {
	return []string{
		"data_dir",
		"backend",
		"id_format",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataDir = DefaultDataDir
	cfg.Backend = DefaultBackend
	cfg.IDFormat = DefaultIDFormat
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}
