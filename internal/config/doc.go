// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.cathy/cathy.toml or OS-specific config directory)
// 3. Project config file (cathy.toml or .cathy.toml in the working directory)
// 4. A .env file in the working directory
// 5. Environment variables (CATHY_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence. Values
// from .env never replace variables already set in the process environment.
//
// User-level config locations:
// - ~/.cathy/cathy.toml (preferred)
// - Windows: %APPDATA%\cathy\cathy.toml
// - macOS: ~/Library/Application Support/cathy/cathy.toml
// - Linux/BSD: $XDG_CONFIG_HOME/cathy/cathy.toml or ~/.config/cathy/cathy.toml
//
// Every config file is checked against an embedded JSON Schema before it is
// decoded, so unknown keys and bad values are reported with their key path.
package config
