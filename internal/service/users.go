// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/models"
)

type userService struct {
	users store.UserStore
}

// NewUserService constructs a UserService backed by users.
func NewUserService(users store.UserStore) UserService {
	return &userService{users: users}
}

func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	if req.Username == "" || req.Password == "" {
		return models.User{}, ErrInvalidRequest
	}

	accessLevel := int32(0)
	if req.AccessLevel != nil {
		accessLevel = *req.AccessLevel
	}

	return s.users.Create(ctx, models.User{
		Username:    req.Username,
		AccessLevel: accessLevel,
		Roles:       req.Roles,
	}, req.Password)
}

func (s *userService) DeleteUser(ctx context.Context, username string) error {
	if username == "" {
		return ErrInvalidRequest
	}
	return s.users.Delete(ctx, username)
}

func (s *userService) UpdateUser(ctx context.Context, req models.UpdateUserRequest) (models.User, error) {
	if req.Username == "" {
		return models.User{}, ErrInvalidRequest
	}
	return s.users.Update(ctx, req.Username, req.AccessLevel, req.Roles)
}

func (s *userService) GetUser(ctx context.Context, username string) (models.User, error) {
	if username == "" {
		return models.User{}, ErrInvalidRequest
	}
	return s.users.GetByName(ctx, username)
}
