// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDEK(t *testing.T) []byte {
	t.Helper()
	dek := make([]byte, dekSize)
	_, err := io.ReadFull(rand.Reader, dek)
	require.NoError(t, err)
	return dek
}

func TestEnvelope_SealOpen_RoundTrips(t *testing.T) {
	env, err := NewEnvelope(newTestDEK(t))
	require.NoError(t, err)

	ciphertext := env.Seal(1, []byte("s3cr3t"))
	plaintext, err := env.Open(1, ciphertext)

	require.NoError(t, err)
	assert.Equal(t, []byte("s3cr3t"), plaintext)
}

func TestEnvelope_Open_WrongNonceFails(t *testing.T) {
	env, err := NewEnvelope(newTestDEK(t))
	require.NoError(t, err)

	ciphertext := env.Seal(1, []byte("s3cr3t"))
	_, err = env.Open(2, ciphertext)

	assert.ErrorIs(t, err, ErrCryptoFailure)
}

func TestEnvelope_Open_WrongKeyFails(t *testing.T) {
	sealer, err := NewEnvelope(newTestDEK(t))
	require.NoError(t, err)
	opener, err := NewEnvelope(newTestDEK(t))
	require.NoError(t, err)

	ciphertext := sealer.Seal(1, []byte("s3cr3t"))
	_, err = opener.Open(1, ciphertext)

	assert.ErrorIs(t, err, ErrCryptoFailure)
}

func TestEnvelope_Open_TamperedCiphertextFails(t *testing.T) {
	env, err := NewEnvelope(newTestDEK(t))
	require.NoError(t, err)

	ciphertext := env.Seal(1, []byte("s3cr3t"))
	ciphertext[0] ^= 0xff

	_, err = env.Open(1, ciphertext)

	assert.ErrorIs(t, err, ErrCryptoFailure)
}

func TestNonceBytes_BigEndianRightJustified(t *testing.T) {
	nonce := NonceBytes(1)

	assert.Equal(t, [12]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}, nonce)
}

func TestNonceBytes_DistinctCountersProduceDistinctNonces(t *testing.T) {
	assert.NotEqual(t, NonceBytes(1), NonceBytes(2))
}
