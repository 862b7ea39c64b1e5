// Package config resolves the directories relay works from.
package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory used to store relay data. The RELAY_HOME
// environment variable overrides the default (used by tests and schedulers
// that want an isolated registry).
func DataDir() (string, error) {
	if override := os.Getenv("RELAY_HOME"); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	// Use a dot-directory in the user's home on all platforms
	return filepath.Join(home, ".relay"), nil
}

// DBPath returns the full path to the SQLite database file.
func DBPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "relay.db"), nil
}

// BaseDir returns the directory containing the relay executable, resolved
// through symlinks. It is the default working directory for every step, so
// pipelines behave the same regardless of where the operator launches relay
// from. Resolved once at startup by the caller and passed down explicitly.
func BaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
