// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chamber/internal/logger"
	"github.com/MKhiriev/go-chamber/models"
	"github.com/jackc/pgerrcode"
)

// PostgresSecretStore is the Postgres-backed implementation of
// [SecretStore]. It never decrypts anything: every row it hands back
// carries nonce and ciphertext exactly as persisted, leaving the AEAD
// work to the vault layer.
type PostgresSecretStore struct {
	db *DB
}

// NewPostgresSecretStore returns a SecretStore backed by db.
func NewPostgresSecretStore(db *DB) *PostgresSecretStore {
	return &PostgresSecretStore{db: db}
}

func (s *PostgresSecretStore) Create(ctx context.Context, row models.Secret) error {
	query, args, err := buildCreateSecretQuery(row.Key, row.Nonce, row.Ciphertext, row.Tags, row.RoleWhitelist, row.AccessLevel)
	if err != nil {
		return fmt.Errorf("store: building create secret query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.logDebug(ctx, "create secret", query)
		if postgresErrorCode(err) == pgerrcode.UniqueViolation {
			return ErrDuplicateKey
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func (s *PostgresSecretStore) UpdateTags(ctx context.Context, caller Caller, key string, tags []string) error {
	query, args, err := buildUpdateTagsQuery(caller, key, tags)
	if err != nil {
		return fmt.Errorf("store: building update tags query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return requireRowAffected(result)
}

func (s *PostgresSecretStore) Delete(ctx context.Context, caller Caller, key string) error {
	query, args, err := buildDeleteSecretQuery(caller, key)
	if err != nil {
		return fmt.Errorf("store: building delete secret query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return requireRowAffected(result)
}

func (s *PostgresSecretStore) ViewPlain(ctx context.Context, caller Caller, key string) (models.Secret, error) {
	query, args, err := buildViewPlainSecretQuery(caller, key)
	if err != nil {
		return models.Secret{}, fmt.Errorf("store: building view secret query: %w", err)
	}

	var row models.Secret
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&row.Key, &row.Nonce, &row.Ciphertext, &row.Tags, &row.AccessLevel, &row.RoleWhitelist, &row.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Secret{}, ErrNotFound
	}
	if err != nil {
		return models.Secret{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return row, nil
}

func (s *PostgresSecretStore) ListByCaller(ctx context.Context, caller Caller, tagFilter string) ([]models.Secret, error) {
	query, args, err := buildListByCallerQuery(caller, tagFilter)
	if err != nil {
		return nil, fmt.Errorf("store: building list secrets query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer rows.Close()

	var result []models.Secret
	for rows.Next() {
		var row models.Secret
		if err := rows.Scan(&row.Key, &row.Tags, &row.AccessLevel, &row.RoleWhitelist, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return result, nil
}

func (s *PostgresSecretStore) ListAllAdmin(ctx context.Context) ([]models.Secret, error) {
	query, args, err := buildListAllAdminQuery()
	if err != nil {
		return nil, fmt.Errorf("store: building list all secrets query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer rows.Close()

	var result []models.Secret
	for rows.Next() {
		var row models.Secret
		if err := rows.Scan(&row.Key, &row.Nonce, &row.Ciphertext, &row.Tags, &row.AccessLevel, &row.RoleWhitelist, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return result, nil
}

// RekeyAll rewrites every row named in rows inside a single transaction,
// so a failure partway through rolls back to the pre-rekey ciphertext for
// every row (spec.md §4.9's all-or-nothing guarantee).
func (s *PostgresSecretStore) RekeyAll(ctx context.Context, rows []models.RekeyedRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning rekey transaction: %v", ErrStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, row := range rows {
		query, args, err := buildRekeyRowQuery(row.Key, row.Nonce, row.Ciphertext)
		if err != nil {
			return fmt.Errorf("store: building rekey query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: rewriting %q: %v", ErrStorage, row.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing rekey transaction: %v", ErrStorage, err)
	}
	return nil
}

func (s *PostgresSecretStore) logDebug(ctx context.Context, op, query string) {
	logger.FromContext(ctx).Debug().Str("op", op).Str("query", query).Msg("executed query")
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
