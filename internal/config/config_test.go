// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredConfig_Validate_RequiresDSN(t *testing.T) {
	cfg := &StructuredConfig{
		Server: Server{HTTPAddress: ":8080"},
	}

	err := cfg.validate()

	require.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestStructuredConfig_Validate_RequiresAddress(t *testing.T) {
	cfg := &StructuredConfig{
		DB: DB{DSN: "postgres://localhost/chamber"},
	}

	err := cfg.validate()

	require.ErrorIs(t, err, ErrInvalidServerConfigs)
}

func TestStructuredConfig_Validate_FillsDefaults(t *testing.T) {
	cfg := &StructuredConfig{
		DB:     DB{DSN: "postgres://localhost/chamber"},
		Server: Server{HTTPAddress: ":8080"},
	}

	err := cfg.validate()

	require.NoError(t, err)
	assert.Equal(t, "data/chamber.bin", cfg.KeyFile.Path)
	assert.Equal(t, defaultTokenDuration, cfg.App.TokenDuration)
}

func TestStructuredConfig_Validate_PreservesExplicitValues(t *testing.T) {
	cfg := &StructuredConfig{
		DB:      DB{DSN: "postgres://localhost/chamber"},
		Server:  Server{HTTPAddress: ":8080"},
		KeyFile: KeyFile{Path: "/etc/chamber/keyfile.bin"},
		App:     App{TokenDuration: time.Hour},
	}

	require.NoError(t, cfg.validate())

	assert.Equal(t, "/etc/chamber/keyfile.bin", cfg.KeyFile.Path)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
}
