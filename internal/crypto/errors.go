// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrCorruptKeyFile indicates the on-disk key-file could not be
	// decoded into a valid [KeyFile]. The spec mandates the process
	// refuse to start rather than guess at recovery.
	ErrCorruptKeyFile = errors.New("crypto: corrupt key-file")

	// ErrCryptoFailure is returned by [Envelope.Open] on any
	// authentication-tag mismatch. It deliberately does not distinguish
	// tag corruption from a wrong key or wrong nonce — callers must not
	// be able to use the distinction as an oracle (spec.md §7).
	ErrCryptoFailure = errors.New("crypto: authentication failed")
)
