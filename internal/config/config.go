// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package config

import (
	"time"
)

// ClientConfig is the top-level configuration container for the
// go-course-keeper client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type ClientConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Adapter holds network settings for the remote classroom server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds settings for the local cache database and the
	// credential store directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache holds cache staleness policy settings.
	Cache Cache `envPrefix:"CACHE_"`

	// Workers holds configuration for the background auto-sync worker.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Shown on the welcome screen.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds configuration for the outbound HTTP transport.
type Adapter struct {
	// BaseURL is the base URL of the classroom server
	// (e.g. "https://classroom.example.org").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the maximum duration allowed for a single
	// outbound request (e.g. "30s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryAttempts is the number of extra attempts made for transient
	// network failures before a fetch is reported as failed.
	// Env: ADAPTER_RETRY_ATTEMPTS
	RetryAttempts int `env:"RETRY_ATTEMPTS"`
}

// Storage groups the configuration for all local persistence backends.
type Storage struct {
	// DB holds the local cache database connection settings.
	DB DB `envPrefix:"DB_"`

	// CredentialsDir is the directory where the sealed session
	// credentials and the device secret are kept.
	// Env: STORAGE_CREDENTIALS_DIR
	CredentialsDir string `env:"CREDENTIALS_DIR"`
}

// DB holds connection settings for the local SQLite cache database.
type DB struct {
	// DSN is the SQLite data source name, typically a file path
	// (e.g. "course-keeper.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Cache holds the staleness policy for the local cache.
type Cache struct {
	// MaxAge is the age beyond which a cached entry is considered
	// expired and a fresh fetch is preferred (e.g. "1h").
	// Env: CACHE_MAX_AGE
	MaxAge time.Duration `env:"MAX_AGE"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the background auto-sync worker
	// runs a full synchronization (e.g. "15m").
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetClientConfig loads, merges, and validates the client configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *ClientConfig or an error if any source fails
// to load or the final config fails validation.
func GetClientConfig() (*ClientConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
