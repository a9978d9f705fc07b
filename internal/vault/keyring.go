// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault implements the seal state machine (C6), the nonce source
// (C2), and the bulk re-key handoff (C9's locking discipline) on top of
// the crypto envelope in [github.com/MKhiriev/go-chamber/internal/crypto].
package vault

import (
	"crypto/subtle"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-chamber/internal/crypto"
)

// Keyring owns the single authoritative key-file in memory and the
// instance-wide seal flag. Both are guarded by the same lock so that
// concurrent secret operations always observe either the entire old
// key-file or the entire new one, never a mix (spec.md §5).
type Keyring struct {
	mu     sync.RWMutex
	sealed bool

	keyFile  *crypto.KeyFile
	envelope *crypto.Envelope

	store KeyFileStore
}

// Bootstrap loads the key-file from store, or generates a fresh one if
// absent (spec.md §4.1). The seal starts true regardless of whether the
// key-file was just created or already existed (spec.md §4.6 — "always
// Sealed" at process start). generatedKey is non-empty only when a new
// key-file was created; callers must log it to operator output exactly
// once and never again.
func Bootstrap(store KeyFileStore) (kr *Keyring, generatedKey string, err error) {
	kf, err := store.Load()
	if err != nil {
		return nil, "", err
	}

	if kf == nil {
		kf, err = crypto.NewKeyFile()
		if err != nil {
			return nil, "", fmt.Errorf("vault: generating key-file: %w", err)
		}
		if err := store.Save(kf); err != nil {
			return nil, "", fmt.Errorf("vault: saving fresh key-file: %w", err)
		}
		generatedKey = kf.UnsealKey
	}

	envelope, err := crypto.NewEnvelope(kf.DEK)
	if err != nil {
		return nil, "", fmt.Errorf("vault: building envelope: %w", err)
	}

	return &Keyring{
		sealed:   true,
		keyFile:  kf,
		envelope: envelope,
		store:    store,
	}, generatedKey, nil
}

// IsSealed reports the current seal state. The lock is held only for the
// read, never for any downstream handler work (spec.md §4.6).
func (k *Keyring) IsSealed() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.sealed
}

// Unseal transitions Sealed → Unsealed if presented matches the key-file's
// unseal key, using a constant-time comparison to avoid timing side
// channels. Returns [ErrForbidden] on mismatch, leaving the state Sealed.
func (k *Keyring) Unseal(presented string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !constantTimeEqual(presented, k.keyFile.UnsealKey) {
		return ErrForbidden
	}

	k.sealed = false
	return nil
}

// Seal transitions Unsealed → Sealed administratively.
func (k *Keyring) Seal() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.sealed = true
}

// VerifyRootKey reports whether presented matches the current key-file's
// unseal key, without touching the seal flag. Used to gate the
// operator-only endpoints that present x-chamber-key directly
// (/users/*, /binfile) rather than a bearer token.
func (k *Keyring) VerifyRootKey(presented string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return constantTimeEqual(presented, k.keyFile.UnsealKey)
}

// Encrypt seals plaintext under the current DEK, consuming the next nonce
// counter value and persisting it before returning, per the nonce
// source's persist-before-return rule (spec.md §4.2, I4). Returns
// [ErrLocked] if the instance is sealed.
func (k *Keyring) Encrypt(plaintext []byte) (nonce uint64, ciphertext []byte, err error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.sealed {
		return 0, nil, ErrLocked
	}

	n, err := k.nextNonceLocked()
	if err != nil {
		return 0, nil, err
	}

	return n, k.envelope.Seal(n, plaintext), nil
}

// Decrypt opens ciphertext sealed under nonce using the current DEK.
// Returns [ErrLocked] if the instance is sealed, or
// [crypto.ErrCryptoFailure] on any authentication failure.
func (k *Keyring) Decrypt(nonce uint64, ciphertext []byte) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if k.sealed {
		return nil, ErrLocked
	}

	return k.envelope.Open(nonce, ciphertext)
}

// nextNonceLocked atomically reads-and-increments the nonce counter and
// persists the new value before returning it, per spec.md §4.2. Caller
// must hold k.mu for writing. If persistence fails, the counter value is
// never revealed to the caller.
func (k *Keyring) nextNonceLocked() (uint64, error) {
	n := k.keyFile.NonceCounter
	k.keyFile.NonceCounter++

	if err := k.store.Save(k.keyFile); err != nil {
		k.keyFile.NonceCounter-- // persistence failed; counter value is unconsumed
		return 0, fmt.Errorf("vault: persisting nonce counter: %w", err)
	}

	return n, nil
}

func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
