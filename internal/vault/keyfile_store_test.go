// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-chamber/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKeyFileStore_Load_AbsentReturnsNil(t *testing.T) {
	store := NewFileKeyFileStore(filepath.Join(t.TempDir(), "chamber.bin"))

	kf, err := store.Load()

	require.NoError(t, err)
	assert.Nil(t, kf)
}

func TestFileKeyFileStore_SaveLoad_RoundTrips(t *testing.T) {
	store := NewFileKeyFileStore(filepath.Join(t.TempDir(), "nested", "chamber.bin"))
	kf, err := crypto.NewKeyFile()
	require.NoError(t, err)
	kf.NonceCounter = 7

	require.NoError(t, store.Save(kf))

	got, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, kf.UnsealKey, got.UnsealKey)
	assert.Equal(t, kf.DEK, got.DEK)
	assert.EqualValues(t, 7, got.NonceCounter)
}

func TestFileKeyFileStore_Save_OverwritesPreviousContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chamber.bin")
	store := NewFileKeyFileStore(path)

	first, err := crypto.NewKeyFile()
	require.NoError(t, err)
	require.NoError(t, store.Save(first))

	second, err := crypto.NewKeyFile()
	require.NoError(t, err)
	require.NoError(t, store.Save(second))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, second.UnsealKey, got.UnsealKey)
}
