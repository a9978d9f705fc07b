// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/internal/vault"
	"github.com/MKhiriev/go-chamber/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnsealedKeyring(t *testing.T) *vault.Keyring {
	t.Helper()
	kr, generated, err := vault.Bootstrap(vault.NewFileKeyFileStore(t.TempDir() + "/chamber.bin"))
	require.NoError(t, err)
	require.NoError(t, kr.Unseal(generated))
	return kr
}

func TestVaultService_SetGet_RoundTrips(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	svc := NewVaultService(secrets, newUnsealedKeyring(t))
	ctx := context.Background()
	caller := store.Caller{AccessLevel: 0}

	require.NoError(t, svc.SetSecret(ctx, caller, models.SetSecretRequest{Key: "k1", Value: "s1"}))

	got, err := svc.GetSecret(ctx, caller, "k1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got)
}

func TestVaultService_GetSecret_HiddenFromCallerBelowAccessLevel(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	svc := NewVaultService(secrets, newUnsealedKeyring(t))
	ctx := context.Background()

	level := int32(500)
	require.NoError(t, svc.SetSecret(ctx, store.Caller{AccessLevel: 500}, models.SetSecretRequest{Key: "k2", Value: "s2", AccessLevel: &level}))

	_, err := svc.GetSecret(ctx, store.Caller{AccessLevel: 0}, "k2")
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := svc.GetSecret(ctx, store.Caller{AccessLevel: 500}, "k2")
	require.NoError(t, err)
	assert.Equal(t, "s2", got)
}

func TestVaultService_GetSecret_HiddenFromCallerWithoutRole(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	svc := NewVaultService(secrets, newUnsealedKeyring(t))
	ctx := context.Background()

	require.NoError(t, svc.SetSecret(ctx, store.Caller{}, models.SetSecretRequest{
		Key: "k3", Value: "s3", RoleWhitelist: []string{"sre"},
	}))

	_, err := svc.GetSecret(ctx, store.Caller{Roles: []string{}}, "k3")
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := svc.GetSecret(ctx, store.Caller{Roles: []string{"sre"}}, "k3")
	require.NoError(t, err)
	assert.Equal(t, "s3", got)
}

func TestVaultService_ListSecrets_OnlyDominatedRows(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	svc := NewVaultService(secrets, newUnsealedKeyring(t))
	ctx := context.Background()

	level := int32(500)
	require.NoError(t, svc.SetSecret(ctx, store.Caller{}, models.SetSecretRequest{Key: "low", Value: "v"}))
	require.NoError(t, svc.SetSecret(ctx, store.Caller{AccessLevel: 500}, models.SetSecretRequest{Key: "high", Value: "v", AccessLevel: &level}))

	list, err := svc.ListSecrets(ctx, store.Caller{AccessLevel: 0}, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "low", list[0].Key)
}

func TestVaultService_DeleteSecret_NotFoundForInvisibleRow(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	svc := NewVaultService(secrets, newUnsealedKeyring(t))
	ctx := context.Background()

	level := int32(500)
	require.NoError(t, svc.SetSecret(ctx, store.Caller{}, models.SetSecretRequest{Key: "k4", Value: "v", AccessLevel: &level}))

	err := svc.DeleteSecret(ctx, store.Caller{AccessLevel: 0}, "k4")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
