package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// percentVar matches Windows-style %NAME% references.
var percentVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_()]*)%`)

// resolveDataDir expands $VARS (and %VARS% on Windows) and a leading ~ in
// dir, then makes it absolute. Unset %VARS% are left as written.
func resolveDataDir(dir string) (string, error) {
	dir = strings.TrimSpace(os.ExpandEnv(dir))
	if runtime.GOOS == "windows" {
		dir = percentVar.ReplaceAllStringFunc(dir, func(ref string) string {
			if v, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
				return v
			}
			return ref
		})
	}
	if dir == "" {
		return "", fmt.Errorf("data_dir is empty")
	}

	if rest, ok := homeRelative(dir); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving ~ in data_dir: %w", err)
		}
		dir = filepath.Join(home, rest)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving data dir: %w", err)
	}
	return abs, nil
}

// homeRelative reports whether dir starts with ~ and returns the remainder.
// ~user forms are not supported.
func homeRelative(dir string) (string, bool) {
	if dir == "~" {
		return "", true
	}
	if strings.HasPrefix(dir, "~/") || (runtime.GOOS == "windows" && strings.HasPrefix(dir, `~\`)) {
		return dir[2:], true
	}
	return "", false
}
