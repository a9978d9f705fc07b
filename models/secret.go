// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Secret is an encrypted-at-rest row: the plaintext value is never held by
// this type, only the AEAD ciphertext and the nonce counter value that
// produced it.
type Secret struct {
	// ID is the internal unique identifier of the row.
	ID int64 `json:"-"`

	// Key is the unique, non-empty name the secret is addressed by.
	Key string `json:"key"`

	// Nonce is the nonce-counter value active when Ciphertext was sealed.
	// It is a pure function of the counter, not the raw 96-bit nonce
	// bytes — those are derived deterministically from it (§4.2).
	Nonce uint64 `json:"-"`

	// Ciphertext is the AES-256-GCM output, including the authentication
	// tag.
	Ciphertext []byte `json:"-"`

	// Tags is the list of caller-supplied labels used by list_by_caller's
	// optional tag filter. It is stored as given: duplicates are not
	// removed.
	Tags []string `json:"tags"`

	// AccessLevel is the minimum caller access level required to view
	// this row at all (view_encrypted) or to read its plaintext
	// (view_plain). Defaults to 0.
	AccessLevel int32 `json:"access_level"`

	// RoleWhitelist, if non-empty, additionally restricts view_plain to
	// callers whose roles intersect this set.
	RoleWhitelist []string `json:"role_whitelist"`

	// CreatedAt is the timestamp the row was first created. Preserved
	// across re-keying.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table associated with the
// Secret model.
func (s Secret) TableName() string {
	return "secrets"
}

// RekeyedRow is the result of re-encrypting one Secret under a new DEK
// during the re-key pipeline (C9); only the columns rekey_all rewrites are
// carried.
type RekeyedRow struct {
	Key        string
	Nonce      uint64
	Ciphertext []byte
}
