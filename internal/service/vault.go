// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/internal/vault"
	"github.com/MKhiriev/go-chamber/models"
)

type vaultService struct {
	secrets store.SecretStore
	keyring *vault.Keyring
}

// NewVaultService constructs a VaultService that persists through secrets
// and encrypts/decrypts through keyring.
func NewVaultService(secrets store.SecretStore, keyring *vault.Keyring) VaultService {
	return &vaultService{secrets: secrets, keyring: keyring}
}

func (s *vaultService) SetSecret(ctx context.Context, _ store.Caller, req models.SetSecretRequest) error {
	if req.Key == "" {
		return ErrInvalidRequest
	}

	nonce, ciphertext, err := s.keyring.Encrypt([]byte(req.Value))
	if err != nil {
		return fmt.Errorf("service: encrypting secret: %w", err)
	}

	accessLevel := int32(0)
	if req.AccessLevel != nil {
		accessLevel = *req.AccessLevel
	}

	return s.secrets.Create(ctx, models.Secret{
		Key:           req.Key,
		Nonce:         nonce,
		Ciphertext:    ciphertext,
		Tags:          req.Tags,
		AccessLevel:   accessLevel,
		RoleWhitelist: req.RoleWhitelist,
	})
}

// GetSecret fetches the caller-visible ciphertext and decrypts it. The
// authorization check and the fetch happen together in store.ViewPlain
// so there is no window where a row is fetched and then separately
// rejected (spec.md §4.8): an unauthorized caller and an absent key both
// surface as store.ErrNotFound, and a decryption failure never tells the
// caller which of key/nonce/tag mismatched (spec.md §7a).
func (s *vaultService) GetSecret(ctx context.Context, caller store.Caller, key string) (string, error) {
	if key == "" {
		return "", ErrInvalidRequest
	}

	row, err := s.secrets.ViewPlain(ctx, caller, key)
	if err != nil {
		return "", err
	}

	plaintext, err := s.keyring.Decrypt(row.Nonce, row.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("service: decrypting secret: %w", err)
	}
	return string(plaintext), nil
}

func (s *vaultService) ListSecrets(ctx context.Context, caller store.Caller, tagFilter string) ([]models.SecretSummary, error) {
	rows, err := s.secrets.ListByCaller(ctx, caller, tagFilter)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.SecretSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, models.SecretSummary{
			Key:           row.Key,
			Tags:          row.Tags,
			AccessLevel:   row.AccessLevel,
			RoleWhitelist: row.RoleWhitelist,
		})
	}
	return summaries, nil
}

func (s *vaultService) UpdateTags(ctx context.Context, caller store.Caller, key string, tags []string) error {
	if key == "" {
		return ErrInvalidRequest
	}
	return s.secrets.UpdateTags(ctx, caller, key, tags)
}

func (s *vaultService) DeleteSecret(ctx context.Context, caller store.Caller, key string) error {
	if key == "" {
		return ErrInvalidRequest
	}
	return s.secrets.Delete(ctx, caller, key)
}
