// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these
// values. Existence-opacity (spec.md §7b, P7) is enforced here: secret
// reads apply the authorization predicate in the query itself, and
// ErrNotFound is returned uniformly whether a row is genuinely absent or
// merely invisible to the caller under that predicate.
var (
	// ErrNotFound is returned when a row does not exist, or — for secret
	// reads — when it exists but the caller does not dominate it. The two
	// cases are indistinguishable by design (spec.md §4.4, §7, P7).
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicateKey is returned by Create when a secret's key already
	// exists (spec.md §4.4, I5).
	ErrDuplicateKey = errors.New("store: duplicate key")

	// ErrDuplicateUser is returned by Create when a username already
	// exists (spec.md §4.5).
	ErrDuplicateUser = errors.New("store: duplicate user")

	// ErrBadCredentials is returned by Verify on password mismatch.
	ErrBadCredentials = errors.New("store: bad credentials")

	// ErrStorage wraps unexpected low-level database failures that do not
	// map to a more specific sentinel above.
	ErrStorage = errors.New("store: storage failure")
)
