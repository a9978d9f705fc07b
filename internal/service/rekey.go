// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chamber/internal/crypto"
	"github.com/MKhiriev/go-chamber/internal/logger"
	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/internal/vault"
	"github.com/MKhiriev/go-chamber/models"
)

type rekeyService struct {
	secrets store.SecretStore
	keyring *vault.Keyring
}

// NewRekeyService constructs a RekeyService that rewrites every row in
// secrets and swaps keyring to the new key-file atomically (C9).
func NewRekeyService(secrets store.SecretStore, keyring *vault.Keyring) RekeyService {
	return &rekeyService{secrets: secrets, keyring: keyring}
}

// Rekey implements spec.md §4.9's five-step procedure. Every row is
// decrypted under the old DEK and re-sealed under the new DEK entirely
// in memory before anything is written to the database; the database
// transaction in RekeyAll is the single point of commitment, and the
// key-file is only swapped in after that transaction succeeds — so the
// system is decryptable under exactly one DEK at every observable
// instant (P6).
func (s *rekeyService) Rekey(ctx context.Context, presentedRootKey string, newKeyFileBytes []byte) error {
	log := logger.FromContext(ctx)

	newKeyFile, err := crypto.UnmarshalKeyFile(newKeyFileBytes)
	if err != nil {
		return fmt.Errorf("service: decoding uploaded key-file: %w", err)
	}

	session, err := vault.BeginRekey(s.keyring, presentedRootKey, newKeyFile)
	if err != nil {
		return err
	}

	rows, err := s.secrets.ListAllAdmin(ctx)
	if err != nil {
		session.Rollback()
		return fmt.Errorf("service: listing secrets for rekey: %w", err)
	}

	rewritten := make([]models.RekeyedRow, 0, len(rows))
	for _, row := range rows {
		plaintext, err := session.DecryptOld(row.Nonce, row.Ciphertext)
		if err != nil {
			session.Rollback()
			log.Error().Str("key", row.Key).Msg("rekey aborted: could not decrypt row under old key")
			return fmt.Errorf("service: decrypting %q during rekey: %w", row.Key, err)
		}

		newNonce, newCiphertext := session.SealNew(plaintext)
		rewritten = append(rewritten, models.RekeyedRow{Key: row.Key, Nonce: newNonce, Ciphertext: newCiphertext})
	}

	if err := s.secrets.RekeyAll(ctx, rewritten); err != nil {
		session.Rollback()
		return fmt.Errorf("service: persisting rekeyed rows: %w", err)
	}

	if err := session.Commit(); err != nil {
		return fmt.Errorf("service: committing new key-file: %w", err)
	}

	log.Info().Int("rows_rekeyed", len(rewritten)).Msg("rekey complete")
	return nil
}
