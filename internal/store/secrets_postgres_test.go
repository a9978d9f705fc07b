// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-chamber/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSecretStore(t *testing.T) (*PostgresSecretStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(arrayArgConverter{}))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresSecretStore(&DB{DB: db}), mock
}

func TestPostgresSecretStore_Create_DuplicateKey(t *testing.T) {
	store, mock := newTestSecretStore(t)

	mock.ExpectExec("INSERT INTO secrets").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := store.Create(context.Background(), models.Secret{Key: "db-password"})

	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestPostgresSecretStore_ViewPlain_FiltersByAuthorization(t *testing.T) {
	store, mock := newTestSecretStore(t)
	caller := Caller{AccessLevel: 5, Roles: []string{"ops"}}

	// The caller's level and roles are embedded as query arguments; a
	// caller who does not dominate the row sees an empty result set, not
	// an error, which is how existence-opacity is enforced at the SQL
	// layer.
	mock.ExpectQuery("SELECT (.+) FROM secrets").
		WithArgs("db-password", int32(5), []string{"ops"}).
		WillReturnRows(sqlmock.NewRows([]string{"key", "nonce", "ciphertext", "tags", "access_level", "role_whitelist", "created_at"}))

	_, err := store.ViewPlain(context.Background(), caller, "db-password")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresSecretStore_ViewPlain_ReturnsRowWhenAuthorized(t *testing.T) {
	store, mock := newTestSecretStore(t)
	caller := Caller{AccessLevel: 5, Roles: []string{"ops"}}
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM secrets").
		WithArgs("db-password", int32(5), []string{"ops"}).
		WillReturnRows(sqlmock.NewRows([]string{"key", "nonce", "ciphertext", "tags", "access_level", "role_whitelist", "created_at"}).
			AddRow("db-password", uint64(1), []byte("ciphertext"), []string{"prod"}, int32(5), []string{"ops"}, now))

	row, err := store.ViewPlain(context.Background(), caller, "db-password")

	require.NoError(t, err)
	assert.Equal(t, "db-password", row.Key)
	assert.Equal(t, []byte("ciphertext"), row.Ciphertext)
}

func TestPostgresSecretStore_Delete_NotFound(t *testing.T) {
	store, mock := newTestSecretStore(t)
	caller := Caller{AccessLevel: 0}

	mock.ExpectExec("DELETE FROM secrets").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), caller, "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresSecretStore_RekeyAll_RollsBackOnMidBatchFailure(t *testing.T) {
	store, mock := newTestSecretStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE secrets").WithArgs(uint64(1), []byte("c1"), "a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE secrets").WithArgs(uint64(1), []byte("c2"), "b").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.RekeyAll(context.Background(), []models.RekeyedRow{
		{Key: "a", Nonce: 1, Ciphertext: []byte("c1")},
		{Key: "b", Nonce: 1, Ciphertext: []byte("c2")},
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSecretStore_RekeyAll_CommitsOnSuccess(t *testing.T) {
	store, mock := newTestSecretStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE secrets").WithArgs(uint64(1), []byte("c1"), "a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RekeyAll(context.Background(), []models.RekeyedRow{
		{Key: "a", Nonce: 1, Ciphertext: []byte("c1")},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
