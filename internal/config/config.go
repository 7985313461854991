// Package config provides the application's configuration options,
// resolved from defaults, an optional .env file, and environment
// variables. Command-line flags override the result.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Backend selects the storage backend: "bolt", "sqlite", or "memory".
	Backend string

	// StoragePath is the path of the storage file for the bolt and
	// sqlite backends.
	StoragePath string

	// LogLevel sets the logging verbosity.
	LogLevel string
}

// Load resolves the configuration. A .env file in the working
// directory is read if present; explicit environment variables win
// over it.
func Load() *Options {
	// Ignore a missing .env; only explicit files matter.
	_ = godotenv.Load()

	opts := &Options{
		Backend:     "bolt",
		StoragePath: defaultStoragePath(),
		LogLevel:    "info",
	}
	if v := os.Getenv("PUSTAKA_BACKEND"); v != "" {
		opts.Backend = v
	}
	if v := os.Getenv("PUSTAKA_STORAGE"); v != "" {
		opts.StoragePath = v
	}
	if v := os.Getenv("PUSTAKA_LOG_LEVEL"); v != "" {
		opts.LogLevel = v
	}
	return opts
}

// defaultStoragePath places the store file under the user config
// directory, falling back to the working directory.
func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pustaka.db"
	}
	return filepath.Join(dir, "pustaka", "pustaka.db")
}
