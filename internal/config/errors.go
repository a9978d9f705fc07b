// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates a missing database connection
	// string (DATABASE_URL).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration: DATABASE_URL is required")
	// ErrInvalidServerConfigs indicates a missing listen address
	// (SERVER_ADDRESS or PORT).
	ErrInvalidServerConfigs = errors.New("invalid server configuration: listen address is required")
)
