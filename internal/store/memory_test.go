// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-chamber/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySecretStore_ViewPlain_HiddenFromUnauthorizedCaller(t *testing.T) {
	s := NewMemorySecretStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, models.Secret{Key: "k", AccessLevel: 5, RoleWhitelist: []string{"admin"}}))

	_, err := s.ViewPlain(ctx, Caller{AccessLevel: 0, Roles: []string{"intern"}}, "k")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySecretStore_ViewPlain_SameErrorForAbsentAndForbidden(t *testing.T) {
	s := NewMemorySecretStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, models.Secret{Key: "k", AccessLevel: 5, RoleWhitelist: []string{"admin"}}))

	_, errAbsent := s.ViewPlain(ctx, Caller{AccessLevel: 0, Roles: []string{"admin"}}, "missing")
	_, errForbidden := s.ViewPlain(ctx, Caller{AccessLevel: 0, Roles: []string{"intern"}}, "k")

	assert.ErrorIs(t, errAbsent, ErrNotFound)
	assert.ErrorIs(t, errForbidden, ErrNotFound)
}

func TestMemorySecretStore_Create_DuplicateKey(t *testing.T) {
	s := NewMemorySecretStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, models.Secret{Key: "k"}))

	err := s.Create(ctx, models.Secret{Key: "k"})

	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMemorySecretStore_ListByCaller_FiltersByTagAndAuthorization(t *testing.T) {
	s := NewMemorySecretStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, models.Secret{Key: "a", Tags: []string{"prod"}, AccessLevel: 0}))
	require.NoError(t, s.Create(ctx, models.Secret{Key: "b", Tags: []string{"dev"}, AccessLevel: 0}))
	require.NoError(t, s.Create(ctx, models.Secret{Key: "c", Tags: []string{"prod"}, AccessLevel: 5, RoleWhitelist: []string{"admin"}}))

	rows, err := s.ListByCaller(ctx, Caller{AccessLevel: 0}, "prod")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].Key)
}

func TestMemorySecretStore_RekeyAll_AllOrNothing(t *testing.T) {
	s := NewMemorySecretStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, models.Secret{Key: "a", Nonce: 1, Ciphertext: []byte("old-a")}))

	err := s.RekeyAll(ctx, []models.RekeyedRow{
		{Key: "a", Nonce: 2, Ciphertext: []byte("new-a")},
		{Key: "missing", Nonce: 2, Ciphertext: []byte("x")},
	})

	assert.ErrorIs(t, err, ErrNotFound)
	row, err := s.ViewPlain(ctx, Caller{AccessLevel: 0}, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("old-a"), row.Ciphertext, "a partial rekey must not mutate any row")
}

func TestMemoryUserStore_CreateAndVerify(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	_, err := s.Create(ctx, models.User{Username: "alice"}, "hunter2")
	require.NoError(t, err)

	_, err = s.Verify(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	user, err := s.Verify(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestMemoryUserStore_Verify_UnknownUsernameIsBadCredentials(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	_, err := s.Verify(ctx, "ghost", "whatever")

	assert.ErrorIs(t, err, ErrBadCredentials, "an unknown username must not be distinguishable from a wrong password")
}

func TestMemoryUserStore_Create_DuplicateUsername(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()
	_, err := s.Create(ctx, models.User{Username: "alice"}, "hunter2")
	require.NoError(t, err)

	_, err = s.Create(ctx, models.User{Username: "alice"}, "other")

	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestMemoryUserStore_Update_PartialFieldsLeftUnchanged(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()
	_, err := s.Create(ctx, models.User{Username: "alice", AccessLevel: 5, Roles: []string{"ops"}}, "hunter2")
	require.NoError(t, err)

	newLevel := int32(1)
	updated, err := s.Update(ctx, "alice", &newLevel, nil)

	require.NoError(t, err)
	assert.EqualValues(t, 1, updated.AccessLevel)
	assert.Equal(t, []string{"ops"}, updated.Roles)
}
