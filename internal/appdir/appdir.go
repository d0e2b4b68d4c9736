// Package appdir provides constants and utilities for the pocketdo data directory layout.
package appdir

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// Name is the application name used for OS-specific config directories.
	Name = "pocketdo"

	// Dir is the name of the per-user data directory under $HOME.
	Dir = ".pocketdo"

	// ConfigFile is the config file name.
	ConfigFile = "pocketdo.toml"

	// HiddenConfigFile is the alternate project config file name.
	HiddenConfigFile = ".pocketdo.toml"

	// DBFile is the SQLite database file name used by the sqlite backend.
	DBFile = "pocketdo.db"

	// LogsDir is the log directory name inside the data directory.
	LogsDir = "logs"
)

// DBPath returns the SQLite database path within a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// LogDir returns the log directory within a data directory.
func LogDir(dataDir string) string {
	return filepath.Join(dataDir, LogsDir)
}

// UserConfigPaths returns candidate user config file paths in lookup order:
// ~/.pocketdo/pocketdo.toml first, then the OS-specific config directory.
func UserConfigPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, Dir, ConfigFile))
	}
	if cfgDir := osUserConfigDir(); cfgDir != "" {
		paths = append(paths, filepath.Join(cfgDir, Name, ConfigFile))
	}
	return paths
}

// ProjectConfigNames returns the config file names checked in the working directory.
func ProjectConfigNames() []string {
	return []string{ConfigFile, HiddenConfigFile}
}

// osUserConfigDir returns the OS-specific user config directory.
// Windows: %APPDATA%, macOS: ~/Library/Application Support,
// others: $XDG_CONFIG_HOME or ~/.config.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return os.Getenv("APPDATA")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".config")
	}
}
