// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-chamber/internal/crypto"
	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/internal/vault"
	"github.com/MKhiriev/go-chamber/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRekeyService_Rekey_ReencryptsEveryRowAtomically(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	// Built inline rather than via newUnsealedKeyring so the generated root
	// key stays available for the Rekey call below.
	keyring, rootKey, err := vault.Bootstrap(vault.NewFileKeyFileStore(t.TempDir() + "/chamber.bin"))
	require.NoError(t, err)
	require.NoError(t, keyring.Unseal(rootKey))
	vaultSvc := NewVaultService(secrets, keyring)
	ctx := context.Background()

	require.NoError(t, vaultSvc.SetSecret(ctx, store.Caller{}, models.SetSecretRequest{Key: "a", Value: "va"}))
	require.NoError(t, vaultSvc.SetSecret(ctx, store.Caller{}, models.SetSecretRequest{Key: "b", Value: "vb"}))

	rowsBefore, err := secrets.ListAllAdmin(ctx)
	require.NoError(t, err)

	newKeyFile, err := crypto.NewKeyFile()
	require.NoError(t, err)
	newKeyFileBytes, err := newKeyFile.Marshal()
	require.NoError(t, err)

	rekeySvc := NewRekeyService(secrets, keyring)

	require.NoError(t, rekeySvc.Rekey(ctx, rootKey, newKeyFileBytes))

	rowsAfter, err := secrets.ListAllAdmin(ctx)
	require.NoError(t, err)
	for i := range rowsBefore {
		assert.NotEqual(t, rowsBefore[i].Ciphertext, rowsAfter[i].Ciphertext, "ciphertext must change after rekey")
	}

	va, err := vaultSvc.GetSecret(ctx, store.Caller{}, "a")
	require.NoError(t, err)
	assert.Equal(t, "va", va)

	vb, err := vaultSvc.GetSecret(ctx, store.Caller{}, "b")
	require.NoError(t, err)
	assert.Equal(t, "vb", vb)
}

func TestRekeyService_Rekey_WrongRootKeyLeavesStateUntouched(t *testing.T) {
	secrets := store.NewMemorySecretStore()
	keyring := newUnsealedKeyring(t)
	vaultSvc := NewVaultService(secrets, keyring)
	ctx := context.Background()
	require.NoError(t, vaultSvc.SetSecret(ctx, store.Caller{}, models.SetSecretRequest{Key: "a", Value: "va"}))

	newKeyFile, err := crypto.NewKeyFile()
	require.NoError(t, err)
	newKeyFileBytes, err := newKeyFile.Marshal()
	require.NoError(t, err)

	rekeySvc := NewRekeyService(secrets, keyring)
	err = rekeySvc.Rekey(ctx, "wrong-root-key", newKeyFileBytes)
	assert.Error(t, err)

	va, err := vaultSvc.GetSecret(ctx, store.Caller{}, "a")
	require.NoError(t, err)
	assert.Equal(t, "va", va, "secret must remain readable under the old key after a failed rekey attempt")
}
