package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from every source and parses args with fs.
// See the package documentation for the priority order.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of keys to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. User config file
	userConfigFile := findUserConfigFile()
	if userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Project config file (overrides user config)
	projectConfigFile := findProjectConfigFile()
	if projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4-5. .env file, then the process environment
	dotenv, err := readDotEnv(dotEnvFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dotEnvFile, err)
	}
	loadFromEnv(cfg, envLookup(dotenv), sources)

	// 6. CLI flags override everything
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &ConfigWithSources{
		Config:      cfg,
		Sources:     sources,
		UserFile:    userConfigFile,
		ProjectFile: projectConfigFile,
	}, nil
}

// configFields returns the configurable keys for source tracking.
func configFields() []string {
	return []string{
		"data_file",
		"ui",
		"reject_duplicate_events",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_file",
	}
}

// loadConfigFile validates a TOML file against the schema and merges the keys it
// defines into cfg.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return err
	}
	if err := validateDocument(raw); err != nil {
		return err
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if sources != nil {
		for _, key := range md.Keys() {
			sources[key.String()] = source
		}
	}
	return nil
}

// Validate checks the merged configuration, whichever source each value came from.
func (c *Config) Validate() error {
	return validateDocument(c)
}

// finalizeConfig normalizes values and resolves paths.
func finalizeConfig(cfg *Config) error {
	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}

	var err error
	if cfg.DataFile, err = resolvePath(cfg.DataFile); err != nil {
		return fmt.Errorf("resolving data file: %w", err)
	}
	if cfg.LogFile != "" {
		if cfg.LogFile, err = resolvePath(cfg.LogFile); err != nil {
			return fmt.Errorf("resolving log file: %w", err)
		}
	}
	return nil
}
