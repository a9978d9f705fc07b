// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyFile_GeneratesDistinctMaterial(t *testing.T) {
	a, err := NewKeyFile()
	require.NoError(t, err)
	b, err := NewKeyFile()
	require.NoError(t, err)

	assert.NotEqual(t, a.UnsealKey, b.UnsealKey)
	assert.NotEqual(t, a.DEK, b.DEK)
	assert.GreaterOrEqual(t, len(a.UnsealKey), 100)
	assert.Len(t, a.DEK, dekSize)
	assert.EqualValues(t, 1, a.NonceCounter)
}

func TestKeyFile_MarshalUnmarshal_RoundTrips(t *testing.T) {
	kf, err := NewKeyFile()
	require.NoError(t, err)
	kf.NonceCounter = 42

	data, err := kf.Marshal()
	require.NoError(t, err)

	got, err := UnmarshalKeyFile(data)
	require.NoError(t, err)

	assert.Equal(t, kf.UnsealKey, got.UnsealKey)
	assert.Equal(t, kf.DEK, got.DEK)
	assert.Equal(t, kf.NonceCounter, got.NonceCounter)
}

func TestUnmarshalKeyFile_RejectsTruncatedData(t *testing.T) {
	_, err := UnmarshalKeyFile([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCorruptKeyFile)
}

func TestUnmarshalKeyFile_RejectsBadLengthPrefix(t *testing.T) {
	kf, err := NewKeyFile()
	require.NoError(t, err)
	data, err := kf.Marshal()
	require.NoError(t, err)

	// Corrupt the length prefix to claim more key bytes than exist.
	data[3] = 0xff

	_, err = UnmarshalKeyFile(data)
	assert.ErrorIs(t, err, ErrCorruptKeyFile)
}

func TestKeyFile_Wipe_ZeroesDEK(t *testing.T) {
	kf, err := NewKeyFile()
	require.NoError(t, err)

	kf.Wipe()

	for _, b := range kf.DEK {
		assert.Equal(t, byte(0), b)
	}
}
