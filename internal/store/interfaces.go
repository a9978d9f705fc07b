// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-chamber/models"
)

// Caller carries the access level and role set of the authenticated
// principal performing a secret operation. Every secret read and list
// query is filtered server-side against Caller, so an unauthorized row
// never leaves the database (spec.md §4.4, §4.8, P7).
type Caller struct {
	AccessLevel int32
	Roles       []string
}

// SecretStore persists secret rows and enforces the access-level
// dominance plus role-whitelist intersection predicate (spec.md §4.4) at
// the query layer: a caller who does not satisfy the predicate sees
// [ErrNotFound], identical to the row not existing at all.
type SecretStore interface {
	// Create inserts a new secret row. Returns ErrDuplicateKey if key is
	// already taken.
	Create(ctx context.Context, row models.Secret) error

	// UpdateTags replaces the tag set of the secret key names, scoped to
	// rows the caller dominates. Returns ErrNotFound if the row is absent
	// or invisible to caller.
	UpdateTags(ctx context.Context, caller Caller, key string, tags []string) error

	// Delete removes the secret named key, scoped to rows the caller
	// dominates. Returns ErrNotFound if the row is absent or invisible to
	// caller.
	Delete(ctx context.Context, caller Caller, key string) error

	// ViewPlain returns the nonce and ciphertext of the secret named
	// key, gated by caller's dominance and role intersection. The service
	// layer decrypts the returned bytes through the vault; this method
	// never touches plaintext.
	ViewPlain(ctx context.Context, caller Caller, key string) (models.Secret, error)

	// ListByCaller returns the metadata (not ciphertext) of every secret
	// visible to caller, optionally filtered to an exact tag match
	// (spec.md Open Questions: exact match, not prefix/substring).
	ListByCaller(ctx context.Context, caller Caller, tagFilter string) ([]models.Secret, error)

	// ListAllAdmin returns every secret row including ciphertext,
	// unfiltered by the authorization predicate. Used only by the re-key
	// pipeline (C9), which must rewrite every row regardless of who could
	// normally read it.
	ListAllAdmin(ctx context.Context) ([]models.Secret, error)

	// RekeyAll overwrites the nonce and ciphertext of every row named in
	// rows within a single transaction, atomically. A failure partway
	// through must leave every row at its pre-rekey value (spec.md §4.9,
	// "all writes commit together or none do").
	RekeyAll(ctx context.Context, rows []models.RekeyedRow) error
}

// UserStore persists user accounts, hashing and verifying passwords with
// Argon2id (spec.md §4.5).
type UserStore interface {
	// Create inserts a new user with password hashed via HashPassword.
	// Returns ErrDuplicateUser if username is already taken.
	Create(ctx context.Context, user models.User, plaintextPassword string) (models.User, error)

	// GetByName returns the user row named username, or ErrNotFound.
	GetByName(ctx context.Context, username string) (models.User, error)

	// Update replaces the access level and/or roles of the named user.
	// A nil accessLevel leaves the access level unchanged; a nil roles
	// slice leaves the roles unchanged.
	Update(ctx context.Context, username string, accessLevel *int32, roles []string) (models.User, error)

	// Delete removes the named user. Returns ErrNotFound if absent.
	Delete(ctx context.Context, username string) error

	// Verify checks plaintextPassword against the stored hash for
	// username in constant time, returning ErrBadCredentials both on a
	// wrong password and on an unknown username — the two are
	// indistinguishable on the wire so /login can't be used to enumerate
	// usernames (spec.md §6).
	Verify(ctx context.Context, username, plaintextPassword string) (models.User, error)
}
