package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "CATHY_"

const dotEnvFile = ".env"

// readDotEnv reads KEY=value pairs from path. A missing file yields no values.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return values, err
}

// lookupFunc resolves a variable and reports which source supplied it.
type lookupFunc func(key string) (string, ConfigSource, bool)

// envLookup prefers the process environment over .env values.
func envLookup(dotenv map[string]string) lookupFunc {
	return func(key string) (string, ConfigSource, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, SourceEnv, true
		}
		if v, ok := dotenv[key]; ok {
			return v, SourceDotEnv, true
		}
		return "", "", false
	}
}

// envName returns the variable that overrides a config key.
func envName(field string) string {
	return EnvPrefix + strings.ToUpper(field)
}

// loadFromEnv overrides config from environment variables. Empty values are ignored.
func loadFromEnv(cfg *Config, lookup lookupFunc, sources map[string]ConfigSource) {
	str := func(field string, target *string) {
		v, src, ok := lookup(envName(field))
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		*target = v
		if sources != nil {
			sources[field] = src
		}
	}
	boolean := func(field string, target *bool) {
		v, src, ok := lookup(envName(field))
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		*target = boolFromString(v)
		if sources != nil {
			sources[field] = src
		}
	}

	str("data_file", &cfg.DataFile)
	str("ui", &cfg.UI)
	boolean("reject_duplicate_events", &cfg.RejectDuplicateEvents)
	str("log_level", &cfg.LogLevel)
	str("log_format", &cfg.LogFormat)
	boolean("log_timestamps", &cfg.LogTimestamps)
	boolean("log_caller", &cfg.LogCaller)
	str("log_file", &cfg.LogFile)
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
