package config

import (
	"flag"
)

// parseFlags defines the global flags on fs and parses args.
// Only flags that were explicitly set override earlier sources.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("pocketdo", flag.ContinueOnError)
	}

	var (
		dataDir       = cfg.DataDir
		backend       = cfg.Backend
		idFormat      = cfg.IDFormat
		logLevel      = cfg.LogLevel
		logFormat     = cfg.LogFormat
		logTimestamps = cfg.LogTimestamps
		logCaller     = cfg.LogCaller
	)

	fs.StringVar(&dataDir, "data-dir", dataDir, "Data directory")
	fs.StringVar(&backend, "backend", backend, "Storage backend (file, sqlite, memory)")
	fs.StringVar(&idFormat, "id-format", idFormat, "Task id format (clock, uuid)")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", logFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", logTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", logCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	flagToSource := map[string]string{
		"data-dir":       "data_dir",
		"backend":        "backend",
		"id-format":      "id_format",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-dir":
			cfg.DataDir = dataDir
		case "backend":
			cfg.Backend = backend
		case "id-format":
			cfg.IDFormat = idFormat
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log-caller":
			cfg.LogCaller = logCaller
		default:
			return
		}
		if sources != nil {
			sources[flagToSource[f.Name]] = SourceFlag
		}
	})

	return nil
}
