// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// PORT is a bare-port convention used by most container platforms and is
// resolved separately, since it does not fit the SERVER_ prefix scheme: if
// present and SERVER_ADDRESS is not, it becomes "SERVER_ADDRESS" = ":PORT".
//
// Returns a wrapped error if env.Parse fails (e.g. a required variable is
// missing or a value cannot be converted to the target type).
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.Server.HTTPAddress == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.Server.HTTPAddress = ":" + port
		}
	}

	return nil
}
