// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const defaultTokenDuration = 24 * time.Hour

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants required to start the service, and fills in defaults for
// fields §6 of the specification leaves to operator discretion.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.KeyFile.Path == "" {
		cfg.KeyFile.Path = "data/chamber.bin"
	}

	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}

	return nil
}
