// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package authn issues and verifies the bearer tokens that authenticate
// requests to the vault (spec.md §4.7, C7). Unlike a deployment that
// pins a configured signing secret, the signing key here is a random
// 200-byte value generated once at process start and held only in
// memory: restarting the process invalidates every outstanding token,
// which is the deliberate tradeoff spec.md §4.7 calls for in exchange
// for never persisting a second secret alongside the key-file.
package authn

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-chamber/models"
	"github.com/golang-jwt/jwt/v5"
)

const signingKeySize = 200

// Authenticator issues and verifies HS256 JWTs whose subject is a
// username rather than a numeric ID.
type Authenticator struct {
	issuer   string
	duration time.Duration
	signKey  []byte
}

// NewAuthenticator builds an Authenticator with a freshly generated
// random signing key. issuer and duration populate every token's "iss"
// and "exp" claims.
func NewAuthenticator(issuer string, duration time.Duration) (*Authenticator, error) {
	if issuer == "" || duration == 0 {
		return nil, errors.New("authn: issuer and duration are required")
	}

	key := make([]byte, signingKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("authn: generating signing key: %w", err)
	}

	return &Authenticator{issuer: issuer, duration: duration, signKey: key}, nil
}

// Issue mints a signed token whose subject is username.
func (a *Authenticator) Issue(username string) (models.Token, error) {
	if username == "" {
		return models.Token{}, errors.New("authn: username is required")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    a.issuer,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.duration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("authn: signing token: %w", err)
	}

	return models.Token{Token: token, RegisteredClaims: *claims, SignedString: signed, Username: username}, nil
}

// Verify checks the signature, issuer, and expiry of tokenString and
// returns the parsed token with its username populated.
func (a *Authenticator) Verify(tokenString string) (models.Token, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return a.signKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer(a.issuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return models.Token{}, ErrInvalidToken
	}

	username, err := claims.GetSubject()
	if err != nil || username == "" {
		return models.Token{}, ErrInvalidToken
	}

	return models.Token{Token: parsed, RegisteredClaims: *claims, SignedString: tokenString, Username: username}, nil
}

// ParseBearerToken extracts the token string from an "Authorization:
// Bearer <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(authorizationHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMissingAuthHeader
	}
	return parts[1], nil
}
