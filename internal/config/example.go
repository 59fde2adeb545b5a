package config

import (
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
)

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Cathy configuration file
# Values can be overridden by a .env file, CATHY_* environment variables or CLI flags

# Task file (supports ~ expansion and %VAR% on Windows)
data_file = "~/.cathy/data/tasks.txt"

# Front-end started by a bare "cathy": repl or tui
ui = "repl"

# Refuse an event whose description is already used by another event
reject_duplicate_events = false

# Logging: debug, info, warn, error or fatal
log_level = "warn"
# text, json or logfmt
log_format = "text"
log_timestamps = false
log_caller = false
# Empty writes to stderr
# log_file = "~/.cathy/cathy.log"
`
}

// WriteTOML writes cfg as TOML.
func WriteTOML(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// WriteSources writes one "key = source" line per config key, sorted by key.
func (cws *ConfigWithSources) WriteSources(w io.Writer) error {
	keys := make([]string, 0, len(cws.Sources))
	for k := range cws.Sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%-24s %s\n", k, cws.Sources[k]); err != nil {
			return err
		}
	}
	return nil
}
