// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authn

import "errors"

var (
	// ErrInvalidToken is returned when a bearer token fails signature,
	// issuer, or expiry verification.
	ErrInvalidToken = errors.New("authn: invalid token")

	// ErrMissingAuthHeader is returned when an Authorization header is
	// absent or not in "Bearer <token>" form.
	ErrMissingAuthHeader = errors.New("authn: missing or malformed authorization header")
)
