// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.pocketdo/pocketdo.toml or OS-specific config directory)
// 3. Project config file (pocketdo.toml or .pocketdo.toml in the working directory)
// 4. Environment variables (POCKETDO_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.pocketdo/pocketdo.toml (preferred)
// - Windows: %APPDATA%\pocketdo\pocketdo.toml
// - macOS: ~/Library/Application Support/pocketdo/pocketdo.toml
// - Linux/BSD: $XDG_CONFIG_HOME/pocketdo/pocketdo.toml or ~/.config/pocketdo/pocketdo.toml
package config
