package config

import (
	"os"
	"path/filepath"
	"strings"
)

// resolvePath turns a configured data or log path into an absolute one. $VAR
// references are expanded first, then a leading ~ becomes the home directory.
// Relative paths are taken from the working directory.
func resolvePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", nil
	}
	p = expandHome(os.ExpandEnv(p))
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Abs(p)
}

// expandHome replaces a leading "~" or "~/" with the user's home directory.
// The ~user form is left alone.
func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && !os.IsPathSeparator(rest[0])) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}
