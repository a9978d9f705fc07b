// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and
// authorization. PasswordHash must always be an Argon2id PHC string, never
// a plaintext password.
type User struct {
	// ID is the internal unique identifier of the user.
	// Not exposed via JSON; used only at the persistence layer.
	ID int64 `json:"-"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash stores the Argon2id PHC-encoded hash of the user's
	// password. Never exposed via JSON.
	PasswordHash string `json:"-"`

	// AccessLevel gates which secrets this user may read or write; a
	// caller may see a secret only if AccessLevel >= the secret's
	// access level.
	AccessLevel int32 `json:"access_level"`

	// Roles is the set of role names granted to this user, matched
	// against a secret's role whitelist.
	Roles []string `json:"roles"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with the
// User model.
func (u User) TableName() string {
	return "users"
}
