package config

import "fmt"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceDotEnv   ConfigSource = ".env"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// UserFile and ProjectFile are the config files that were read, if any.
	UserFile    string
	ProjectFile string
}

// Default values.
const (
	DefaultDataFile  = "~/.cathy/data/tasks.txt"
	DefaultUI        = UIRepl
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// UI front-ends.
const (
	UIRepl = "repl"
	UITUI  = "tui"
)

// Config holds all configuration options.
type Config struct {
	// DataFile is the task file. Relative paths resolve against the working directory.
	DataFile string `toml:"data_file" json:"data_file"`
	// UI selects the default front-end: repl or tui.
	UI string `toml:"ui" json:"ui"`
	// RejectDuplicateEvents refuses an event whose description matches an existing event.
	RejectDuplicateEvents bool `toml:"reject_duplicate_events" json:"reject_duplicate_events"`

	// Logging
	LogLevel      string `toml:"log_level" json:"log_level"`
	LogFormat     string `toml:"log_format" json:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps" json:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller" json:"log_caller"`
	// LogFile receives log output. Empty means stderr.
	LogFile string `toml:"log_file" json:"log_file"`
}

// ValidationError reports a config value that failed validation.
type ValidationError struct {
	Path string // key path of the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
