// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package config

import (
	"strings"
	"time"
)

// applyDefaults fills in sane defaults for fields left unset by every
// configuration source. Defaults are applied before validation so that a
// bare invocation still produces a runnable client.
func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = "http://localhost:8080"
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}
	if cfg.Adapter.RetryAttempts == 0 {
		cfg.Adapter.RetryAttempts = 2
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = "course-keeper.db"
	}
	if cfg.Storage.CredentialsDir == "" {
		cfg.Storage.CredentialsDir = ".course-keeper"
	}
	if cfg.Cache.MaxAge == 0 {
		cfg.Cache.MaxAge = time.Hour
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = 15 * time.Minute
	}
}

// validate checks that the final merged [ClientConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Cache.MaxAge <= 0 {
		return ErrInvalidCacheConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
