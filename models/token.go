// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication
// flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access. Unlike a
// user-ID-keyed system, the "sub" claim here carries the username directly
// (§4.7): the authenticator binds a request to a username subject, not a
// numeric identifier.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization because only the
	// compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature). Use [Token.String]
	// to retrieve it.
	SignedString string `json:"-"`

	// Username is the owner subject extracted from the "sub" claim.
	// Excluded from JSON serialization; an internal server-side cache.
	Username string `json:"-"`
}

// GetUsername extracts the "sub" (subject) claim, which this system uses to
// carry the username rather than a numeric ID.
func (t *Token) GetUsername() (string, error) {
	return t.GetSubject()
}

// String returns the compact JWS serialization of the token (the signed,
// base64url-encoded header.payload.signature string). It implements the
// [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
