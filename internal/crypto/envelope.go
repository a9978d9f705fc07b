// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"
)

// nonceSize is the standard AES-GCM nonce length in bytes.
const nonceSize = 12

// NonceBytes derives the 12-byte AES-GCM nonce from a nonce-counter value:
// the counter is big-endian encoded and right-justified into the buffer,
// leaving the leading 4 bytes zero. This is the exact scheme used by the
// upstream Rust implementation's NonceCounter sequence, grounded in
// original_source/chamber-core/src/secrets.rs.
func NonceBytes(counter uint64) [nonceSize]byte {
	var buf [nonceSize]byte
	binary.BigEndian.PutUint64(buf[4:], counter)
	return buf
}

// Envelope encrypts and decrypts secret values with a single DEK using
// AES-256-GCM (C3). It holds no nonce-issuing state of its own: callers
// supply the nonce-counter value, obtained from the vault's nonce source
// (C2), so that counter persistence and crypto sealing remain separately
// testable.
type Envelope struct {
	aead cipher.AEAD
}

// NewEnvelope constructs an Envelope bound to dek, a 32-byte AES-256 key.
func NewEnvelope(dek []byte) (*Envelope, error) {
	block, err := aes.NewCipher(dek)
	if err != nil {
		return nil, fmt.Errorf("crypto: building AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: building AES-GCM: %w", err)
	}

	return &Envelope{aead: aead}, nil
}

// Seal encrypts plaintext under the nonce derived from counter, using
// empty associated data, and returns the AEAD output including its
// authentication tag.
func (e *Envelope) Seal(counter uint64, plaintext []byte) []byte {
	nonce := NonceBytes(counter)
	return e.aead.Seal(nil, nonce[:], plaintext, nil)
}

// Open decrypts ciphertext sealed under the nonce derived from counter.
// Any failure — wrong key, wrong nonce, or a tampered ciphertext — is
// reported uniformly as [ErrCryptoFailure]; the spec mandates that callers
// never learn which (spec.md §4.3, §7).
func (e *Envelope) Open(counter uint64, ciphertext []byte) ([]byte, error) {
	nonce := NonceBytes(counter)
	plaintext, err := e.aead.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, ErrCryptoFailure
	}
	return plaintext, nil
}
