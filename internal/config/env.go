// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. A .env file in the working directory, when present, is loaded
// first so that local development values are picked up without exporting
// them; a missing .env is not an error.
//
// Struct fields are mapped via their `env` and `envPrefix` tags defined on
// [ClientConfig] and its nested types. Returns a wrapped error if env.Parse
// fails (e.g. a value cannot be converted to the target type).
func parseEnv(cfg any) error {
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
