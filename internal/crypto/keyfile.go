// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
)

// dekSize is the length in bytes of an AES-256 key.
const dekSize = 32

// unsealKeyRawBytes is the amount of CSPRNG output base64-encoded into the
// unseal key. 75 raw bytes produce a 100-character standard-base64 string,
// satisfying the ≥100 char entropy floor from spec.md §3.
const unsealKeyRawBytes = 75

// KeyFile is the durable, authoritative holder of the root unseal key, the
// data-encryption key, and the monotonic nonce counter (C1). Exactly one
// KeyFile is authoritative at a time; re-keying (C9) replaces it atomically.
type KeyFile struct {
	// UnsealKey is the high-entropy secret an operator must present to
	// lift the seal (§4.6) and to administer users (§6).
	UnsealKey string

	// DEK is the 256-bit AES key used by [Envelope] to seal and open
	// every stored secret.
	DEK []byte

	// NonceCounter is the next value [Envelope.Seal] will consume. It is
	// strictly increasing and never reused while DEK is unchanged (I2).
	NonceCounter uint64
}

// NewKeyFile generates a fresh KeyFile: a random unseal key, a random
// 256-bit DEK, and a nonce counter reset to 1, per §3's creation
// invariants (I3).
func NewKeyFile() (*KeyFile, error) {
	rawKey := make([]byte, unsealKeyRawBytes)
	if _, err := io.ReadFull(rand.Reader, rawKey); err != nil {
		return nil, fmt.Errorf("crypto: generating unseal key: %w", err)
	}

	dek := make([]byte, dekSize)
	if _, err := io.ReadFull(rand.Reader, dek); err != nil {
		return nil, fmt.Errorf("crypto: generating DEK: %w", err)
	}

	return &KeyFile{
		UnsealKey:    base64.StdEncoding.EncodeToString(rawKey),
		DEK:          dek,
		NonceCounter: 1,
	}, nil
}

// Marshal serializes kf to the fixed binary layout used for on-disk
// storage and for the /binfile upload (C9a): a uint32 length followed by
// the unseal-key bytes, the 32 raw DEK bytes, then the nonce counter as a
// big-endian uint64. The layout is opaque to clients but round-trips
// byte-for-byte (spec.md §4.1).
func (kf *KeyFile) Marshal() ([]byte, error) {
	if len(kf.DEK) != dekSize {
		return nil, fmt.Errorf("crypto: DEK must be %d bytes, got %d", dekSize, len(kf.DEK))
	}

	unsealKeyBytes := []byte(kf.UnsealKey)
	buf := make([]byte, 4+len(unsealKeyBytes)+dekSize+8)

	binary.BigEndian.PutUint32(buf[0:4], uint32(len(unsealKeyBytes)))
	offset := 4
	copy(buf[offset:], unsealKeyBytes)
	offset += len(unsealKeyBytes)
	copy(buf[offset:], kf.DEK)
	offset += dekSize
	binary.BigEndian.PutUint64(buf[offset:], kf.NonceCounter)

	return buf, nil
}

// UnmarshalKeyFile decodes the layout produced by [KeyFile.Marshal].
// Returns [ErrCorruptKeyFile] if the buffer is malformed or truncated.
func UnmarshalKeyFile(data []byte) (*KeyFile, error) {
	if len(data) < 4 {
		return nil, ErrCorruptKeyFile
	}

	keyLen := binary.BigEndian.Uint32(data[0:4])
	offset := 4

	if uint32(len(data)-offset) < keyLen {
		return nil, ErrCorruptKeyFile
	}
	unsealKey := string(data[offset : offset+int(keyLen)])
	offset += int(keyLen)

	if len(data)-offset != dekSize+8 {
		return nil, ErrCorruptKeyFile
	}
	dek := make([]byte, dekSize)
	copy(dek, data[offset:offset+dekSize])
	offset += dekSize

	nonceCounter := binary.BigEndian.Uint64(data[offset:])

	return &KeyFile{
		UnsealKey:    unsealKey,
		DEK:          dek,
		NonceCounter: nonceCounter,
	}, nil
}

// Wipe zeroes the in-memory DEK. Call it as soon as a KeyFile's crypto
// material is no longer needed (e.g. after the old key-file is superseded
// by a successful re-key), per §9's "do not leak raw key bytes across task
// boundaries" guidance.
func (kf *KeyFile) Wipe() {
	for i := range kf.DEK {
		kf.DEK[i] = 0
	}
}
