// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by request-decoding and header-parsing helpers
// shared across handlers. Callers can match against them with [errors.Is].
var (
	// ErrInvalidJSON is returned when a request body cannot be decoded
	// into the expected JSON shape.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrMissingRootKeyHeader is returned when an operator-only endpoint
	// is called without the x-chamber-key header.
	ErrMissingRootKeyHeader = errors.New("missing x-chamber-key header")
)
