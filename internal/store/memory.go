// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// In-memory implementations of SecretStore and UserStore, used by unit
// and handler tests that want the real authorization semantics without a
// live Postgres instance (spec.md §9, "polymorphic storage backend").
// Both backends evaluate the exact same predicate via internal/authz, so
// tests written against the memory store exercise the same algebra the
// Postgres store enforces in SQL.

package store

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/MKhiriev/go-chamber/internal/authz"
	"github.com/MKhiriev/go-chamber/models"
)

// MemorySecretStore is a goroutine-safe, map-backed SecretStore.
type MemorySecretStore struct {
	mu   sync.RWMutex
	rows map[string]models.Secret
}

// NewMemorySecretStore returns an empty MemorySecretStore.
func NewMemorySecretStore() *MemorySecretStore {
	return &MemorySecretStore{rows: make(map[string]models.Secret)}
}

func (m *MemorySecretStore) Create(_ context.Context, row models.Secret) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rows[row.Key]; exists {
		return ErrDuplicateKey
	}
	m.rows[row.Key] = row
	return nil
}

func (m *MemorySecretStore) UpdateTags(_ context.Context, caller Caller, key string, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.visibleLocked(caller, key)
	if !ok {
		return ErrNotFound
	}
	row.Tags = tags
	m.rows[key] = row
	return nil
}

func (m *MemorySecretStore) Delete(_ context.Context, caller Caller, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.visibleLocked(caller, key); !ok {
		return ErrNotFound
	}
	delete(m.rows, key)
	return nil
}

func (m *MemorySecretStore) ViewPlain(_ context.Context, caller Caller, key string) (models.Secret, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.visibleLocked(caller, key)
	if !ok {
		return models.Secret{}, ErrNotFound
	}
	return row, nil
}

func (m *MemorySecretStore) ListByCaller(_ context.Context, caller Caller, tagFilter string) ([]models.Secret, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []models.Secret
	for _, row := range m.rows {
		if !authz.Allows(caller.AccessLevel, caller.Roles, row.AccessLevel, row.RoleWhitelist) {
			continue
		}
		if tagFilter != "" && !slices.Contains(row.Tags, tagFilter) {
			continue
		}
		result = append(result, models.Secret{
			Key: row.Key, Tags: row.Tags, AccessLevel: row.AccessLevel,
			RoleWhitelist: row.RoleWhitelist, CreatedAt: row.CreatedAt,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (m *MemorySecretStore) ListAllAdmin(_ context.Context) ([]models.Secret, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.Secret, 0, len(m.rows))
	for _, row := range m.rows {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (m *MemorySecretStore) RekeyAll(_ context.Context, rows []models.RekeyedRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate every row exists before mutating any of them, so a
	// mid-batch failure never leaves a partial rewrite in place,
	// mirroring the transactional all-or-nothing guarantee of the
	// Postgres backend (spec.md §4.9).
	for _, update := range rows {
		if _, ok := m.rows[update.Key]; !ok {
			return ErrNotFound
		}
	}
	for _, update := range rows {
		row := m.rows[update.Key]
		row.Nonce = update.Nonce
		row.Ciphertext = update.Ciphertext
		m.rows[update.Key] = row
	}
	return nil
}

func (m *MemorySecretStore) visibleLocked(caller Caller, key string) (models.Secret, bool) {
	row, ok := m.rows[key]
	if !ok || !authz.Allows(caller.AccessLevel, caller.Roles, row.AccessLevel, row.RoleWhitelist) {
		return models.Secret{}, false
	}
	return row, true
}

// MemoryUserStore is a goroutine-safe, map-backed UserStore.
type MemoryUserStore struct {
	mu     sync.RWMutex
	users  map[string]models.User
	nextID int64
}

// NewMemoryUserStore returns an empty MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (m *MemoryUserStore) Create(_ context.Context, user models.User, plaintextPassword string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.Username]; exists {
		return models.User{}, ErrDuplicateUser
	}

	hash, err := HashPassword(plaintextPassword)
	if err != nil {
		return models.User{}, err
	}

	m.nextID++
	user.ID = m.nextID
	user.PasswordHash = hash
	m.users[user.Username] = user
	return user, nil
}

func (m *MemoryUserStore) GetByName(_ context.Context, username string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[username]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (m *MemoryUserStore) Update(_ context.Context, username string, accessLevel *int32, roles []string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[username]
	if !ok {
		return models.User{}, ErrNotFound
	}
	if accessLevel != nil {
		user.AccessLevel = *accessLevel
	}
	if roles != nil {
		user.Roles = roles
	}
	m.users[username] = user
	return user, nil
}

func (m *MemoryUserStore) Delete(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; !ok {
		return ErrNotFound
	}
	delete(m.users, username)
	return nil
}

// Verify reports an unknown username as ErrBadCredentials, not ErrNotFound:
// spec.md §6 gives /login only a 401 for mismatch, and distinguishing
// "no such user" from "wrong password" would let a caller enumerate
// usernames.
func (m *MemoryUserStore) Verify(_ context.Context, username, plaintextPassword string) (models.User, error) {
	m.mu.RLock()
	user, ok := m.users[username]
	m.mu.RUnlock()
	if !ok {
		return models.User{}, ErrBadCredentials
	}

	match, err := VerifyPassword(plaintextPassword, user.PasswordHash)
	if err != nil {
		return models.User{}, err
	}
	if !match {
		return models.User{}, ErrBadCredentials
	}
	return user, nil
}
