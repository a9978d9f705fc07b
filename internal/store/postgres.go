// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chamber/internal/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const maxOpenConnections = 25

// DB wraps a pgx-backed *sql.DB with the logger every query builder in
// this package reaches for via logger.FromContext.
type DB struct {
	*sql.DB
	log *logger.Logger
}

// NewConnectPostgres opens a connection pool against dsn using the pgx
// stdlib driver and verifies it with a ping before returning.
func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening postgres connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConnections)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("store: pinging postgres: %w", err)
	}

	return &DB{DB: sqlDB, log: log}, nil
}

// postgresErrorCode extracts the SQLSTATE code from err, or "" if err is
// not a *pgconn.PgError.
func postgresErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classifyWriteError maps a Postgres write failure to one of this
// package's sentinel errors, falling back to ErrStorage for anything
// unrecognized.
func classifyWriteError(err error, duplicate error) error {
	switch postgresErrorCode(err) {
	case pgerrcode.UniqueViolation:
		return duplicate
	default:
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}
