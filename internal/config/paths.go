// Package config loads and validates the client's configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvPrefix is prepended to every environment variable viper reads.
const EnvPrefix = "BEACON"

// EnvKeyReplacer maps nested keys such as auth.token to AUTH_TOKEN.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// Dir returns the directory holding config.yaml, normally ~/.config/beacon.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "beacon")
	}
	return ExpandPath("~/.config/beacon")
}

// ExpandPath expands a leading ~ and any $VAR references in path.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(path))
}
