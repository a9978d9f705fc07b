// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service wires the storage, crypto, and authentication layers
// into the business operations the HTTP handlers call. Every operation
// here assumes the seal-gate and (where applicable) authentication
// middleware have already run; this package enforces the per-secret
// authorization algebra and the crypto envelope contract, never the
// seal state or token validity themselves.
package service

import (
	"context"

	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/models"
)

// AuthService validates credentials and issues bearer tokens (C7).
type AuthService interface {
	// Login verifies username/password against the user store and, on
	// success, returns a signed token bound to username.
	Login(ctx context.Context, username, password string) (models.Token, error)
}

// VaultService implements the secret operations gated by the
// authorization algebra (C4 + C8) and the crypto envelope (C3).
type VaultService interface {
	// SetSecret encrypts req.Value and persists it under req.Key.
	SetSecret(ctx context.Context, caller store.Caller, req models.SetSecretRequest) error

	// GetSecret returns the decrypted plaintext for key, or ErrForbidden-
	// equivalent opacity (store.ErrNotFound) if caller cannot see it.
	GetSecret(ctx context.Context, caller store.Caller, key string) (string, error)

	// ListSecrets returns metadata for every secret caller dominates,
	// optionally filtered to an exact tag match.
	ListSecrets(ctx context.Context, caller store.Caller, tagFilter string) ([]models.SecretSummary, error)

	// UpdateTags replaces the tag set of an existing, visible secret.
	UpdateTags(ctx context.Context, caller store.Caller, key string, tags []string) error

	// DeleteSecret removes a visible secret.
	DeleteSecret(ctx context.Context, caller store.Caller, key string) error
}

// UserService implements operator-driven user administration (C5),
// gated by the root key at the handler layer, not here.
type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, username string) error
	UpdateUser(ctx context.Context, req models.UpdateUserRequest) (models.User, error)
	GetUser(ctx context.Context, username string) (models.User, error)
}

// RekeyService implements the atomic bulk re-key pipeline (C9).
type RekeyService interface {
	// Rekey validates presentedRootKey, decodes newKeyFileBytes, and
	// re-encrypts every stored secret under the new DEK atomically.
	Rekey(ctx context.Context, presentedRootKey string, newKeyFileBytes []byte) error
}
