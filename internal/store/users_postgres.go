// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chamber/models"
	"github.com/jackc/pgerrcode"
)

// PostgresUserStore is the Postgres-backed implementation of [UserStore].
type PostgresUserStore struct {
	db *DB
}

// NewPostgresUserStore returns a UserStore backed by db.
func NewPostgresUserStore(db *DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) Create(ctx context.Context, user models.User, plaintextPassword string) (models.User, error) {
	hash, err := HashPassword(plaintextPassword)
	if err != nil {
		return models.User{}, fmt.Errorf("store: hashing password: %w", err)
	}

	query, args, err := buildCreateUserQuery(user.Username, hash, user.AccessLevel, user.Roles)
	if err != nil {
		return models.User{}, fmt.Errorf("store: building create user query: %w", err)
	}

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if postgresErrorCode(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	user.PasswordHash = hash
	return user, nil
}

func (s *PostgresUserStore) GetByName(ctx context.Context, username string) (models.User, error) {
	query, args, err := buildGetUserQuery(username)
	if err != nil {
		return models.User{}, fmt.Errorf("store: building get user query: %w", err)
	}

	var user models.User
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.AccessLevel, &user.Roles, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return user, nil
}

func (s *PostgresUserStore) Update(ctx context.Context, username string, accessLevel *int32, roles []string) (models.User, error) {
	query, args, err := buildUpdateUserQuery(username, accessLevel, roles)
	if err != nil {
		return models.User{}, fmt.Errorf("store: building update user query: %w", err)
	}

	var user models.User
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.AccessLevel, &user.Roles, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return user, nil
}

func (s *PostgresUserStore) Delete(ctx context.Context, username string) error {
	query, args, err := buildDeleteUserQuery(username)
	if err != nil {
		return fmt.Errorf("store: building delete user query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return requireRowAffected(result)
}

// Verify fetches the named user and checks plaintextPassword against its
// stored Argon2id hash in constant time (spec.md §4.5). An unknown
// username is reported as ErrBadCredentials, not ErrNotFound: spec.md §6
// gives /login only a 401 for mismatch, and distinguishing "no such user"
// from "wrong password" would let a caller enumerate usernames.
func (s *PostgresUserStore) Verify(ctx context.Context, username, plaintextPassword string) (models.User, error) {
	user, err := s.GetByName(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return models.User{}, ErrBadCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	ok, err := VerifyPassword(plaintextPassword, user.PasswordHash)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !ok {
		return models.User{}, ErrBadCredentials
	}
	return user, nil
}
