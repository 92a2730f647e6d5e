// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers a YAML file and env vars on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory notification queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of notification delivery workers.
	WorkerCount int `koanf:"worker_count"`

	// StoreBackend selects the persistence layer: memory or sqlite.
	StoreBackend string `koanf:"store_backend"`

	// SQLitePath is the database file used when StoreBackend is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// BaseURL is prepended to deep links embedded in notifications.
	BaseURL string `koanf:"base_url"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":9080",
		QueueSize:    10_000,
		WorkerCount:  runtime.NumCPU() * 2,
		StoreBackend: "memory",
		SQLitePath:   "reelscore.db",
		BaseURL:      "http://localhost:9080",
	}
}
