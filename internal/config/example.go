package config

// ExampleConfig returns a commented pocketdo.toml with every key at its default.
func ExampleConfig() string {
	return `# pocketdo configuration
#
# Location (first match wins for the user file):
#   ~/.pocketdo/pocketdo.toml
#   <os config dir>/pocketdo/pocketdo.toml
# A pocketdo.toml or .pocketdo.toml in the working directory overrides it.

# Where tasks and logs are stored. ~ and $VARS are expanded.
data_dir = "` + DefaultDataDir + `"

# Storage backend: file, sqlite, memory
backend = "` + DefaultBackend + `"

# Task id format: clock (millisecond timestamps), uuid
id_format = "` + DefaultIDFormat + `"

# Logging
log_level = "` + DefaultLogLevel + `"   # debug, info, warn, error
log_format = "` + DefaultLogFormat + `"  # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
