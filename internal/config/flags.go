package config

import (
	"flag"
)

// flagToField maps CLI flag names to config keys.
var flagToField = map[string]string{
	"data":                    "data_file",
	"ui":                      "ui",
	"reject-duplicate-events": "reject_duplicate_events",
	"log-level":               "log_level",
	"log-format":              "log_format",
	"log-timestamps":          "log_timestamps",
	"log-caller":              "log_caller",
	"log-file":                "log_file",
}

// RegisterFlags defines the config flags on fs, bound to cfg's current values.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Path to the task file")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "Default front-end (repl|tui)")
	fs.BoolVar(&cfg.RejectDuplicateEvents, "reject-duplicate-events", cfg.RejectDuplicateEvents, "Refuse events whose description is already an event")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error|fatal)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file instead of stderr")
}

// parseFlags defines the config flags on fs, parses args and records which
// values the flags set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("cathy", flag.ContinueOnError)
	}
	RegisterFlags(fs, cfg)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagToField[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
