// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chamber/internal/authn"
	"github.com/MKhiriev/go-chamber/internal/logger"
	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/models"
)

type authService struct {
	users store.UserStore
	auth  *authn.Authenticator
}

// NewAuthService constructs an AuthService backed by users for credential
// checks and auth for token issuance.
func NewAuthService(users store.UserStore, auth *authn.Authenticator) AuthService {
	return &authService{users: users, auth: auth}
}

func (s *authService) Login(ctx context.Context, username, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return models.Token{}, ErrInvalidRequest
	}

	user, err := s.users.Verify(ctx, username, password)
	if err != nil {
		log.Info().Str("username", username).Msg("login failed")
		return models.Token{}, err
	}

	token, err := s.auth.Issue(user.Username)
	if err != nil {
		return models.Token{}, fmt.Errorf("service: issuing token: %w", err)
	}
	return token, nil
}
