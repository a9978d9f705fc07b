// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import "errors"

var (
	// ErrForbidden is returned by Unseal when the presented key does not
	// match the key-file's unseal key, and by root-key checks on /users/*
	// and /binfile (spec.md §4.6, §6).
	ErrForbidden = errors.New("vault: wrong root key")

	// ErrLocked is returned by any data operation attempted while the
	// instance is sealed. The HTTP layer maps this to 423 (spec.md §6).
	ErrLocked = errors.New("vault: instance is sealed")

	// ErrRekeyInProgress names a re-key attempted while another holds the
	// key-file lock. BeginRekey does not return it: a second session
	// blocks on the lock until the first one ends.
	ErrRekeyInProgress = errors.New("vault: re-key already in progress")
)
