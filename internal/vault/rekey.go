// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"fmt"

	"github.com/MKhiriev/go-chamber/internal/crypto"
)

// RekeySession mediates the atomic key-file swap at the heart of the
// re-key pipeline (C9). BeginRekey holds the Keyring's lock exclusively
// for the session's lifetime, so no concurrent Encrypt, Decrypt, Unseal,
// or second re-key can interleave with it (spec.md §5, §9's "unseal
// mid-re-key" decision).
//
// Callers must always end the session with exactly one of [Commit] or
// [Rollback].
type RekeySession struct {
	kr          *Keyring
	oldEnvelope *crypto.Envelope
	newKeyFile  *crypto.KeyFile
	newEnvelope *crypto.Envelope
	ended       bool
}

// BeginRekey validates presented against the current unseal key, then
// locks the keyring exclusively and prepares a session for re-encrypting
// every stored secret under newKeyFile. The check runs under the exclusive
// lock, so it waits for any session already holding it; if presented does
// not match, the lock is released and [ErrForbidden] is returned.
func BeginRekey(kr *Keyring, presented string, newKeyFile *crypto.KeyFile) (*RekeySession, error) {
	kr.mu.Lock()

	if !constantTimeEqual(presented, kr.keyFile.UnsealKey) {
		kr.mu.Unlock()
		return nil, ErrForbidden
	}

	if kr.sealed {
		kr.mu.Unlock()
		return nil, ErrLocked
	}

	newEnvelope, err := crypto.NewEnvelope(newKeyFile.DEK)
	if err != nil {
		kr.mu.Unlock()
		return nil, fmt.Errorf("vault: building new envelope: %w", err)
	}

	return &RekeySession{
		kr:          kr,
		oldEnvelope: kr.envelope,
		newKeyFile:  newKeyFile,
		newEnvelope: newEnvelope,
	}, nil
}

// DecryptOld opens ciphertext sealed under the nonce counter value nonce,
// using the DEK the Keyring held when the session began (spec.md §4.9
// step 3).
func (s *RekeySession) DecryptOld(nonce uint64, ciphertext []byte) ([]byte, error) {
	return s.oldEnvelope.Open(nonce, ciphertext)
}

// SealNew encrypts plaintext under the new DEK, consuming and advancing
// the new key-file's in-memory nonce counter. The new counter is not
// persisted to disk until [Commit] succeeds, so a failed re-key leaves no
// trace on the new key-file's durable state.
func (s *RekeySession) SealNew(plaintext []byte) (nonce uint64, ciphertext []byte) {
	n := s.newKeyFile.NonceCounter
	s.newKeyFile.NonceCounter++
	return n, s.newEnvelope.Seal(n, plaintext)
}

// Commit persists the new key-file and swaps it into the Keyring,
// releasing the lock. Call this only after every rewritten row has
// committed to durable storage in the same database transaction (spec.md
// §4.9 step 4-5); calling it before that commit would let readers observe
// ciphertext under a DEK whose key-file was never saved.
func (s *RekeySession) Commit() error {
	defer s.end()

	if err := s.kr.store.Save(s.newKeyFile); err != nil {
		return fmt.Errorf("vault: persisting new key-file: %w", err)
	}

	s.kr.keyFile.Wipe()
	s.kr.keyFile = s.newKeyFile
	s.kr.envelope = s.newEnvelope

	return nil
}

// Rollback abandons the session, releasing the lock without touching the
// Keyring's state. Old rows and the old key-file remain authoritative,
// satisfying the all-or-nothing guarantee of spec.md §4.9 step 4.
func (s *RekeySession) Rollback() {
	s.end()
}

func (s *RekeySession) end() {
	if s.ended {
		return
	}
	s.ended = true
	s.kr.mu.Unlock()
}
