// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-chamber/internal/authn"
	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/internal/vault"
)

// Services is the top-level container that groups every application
// service implementation. It is constructed once at startup and injected
// into the HTTP handler layer.
type Services struct {
	Auth  AuthService
	Vault VaultService
	Users UserService
	Rekey RekeyService

	// Seal and Authn are exposed as their concrete types, rather than
	// behind narrower interfaces, because the handler layer's middleware
	// needs operations — IsSealed, VerifyRootKey, Verify — that no
	// business operation in this package otherwise calls.
	Seal  *vault.Keyring
	Authn *authn.Authenticator
}

// NewServices wires every service from the storage, crypto, and
// authentication layers.
func NewServices(secrets store.SecretStore, users store.UserStore, keyring *vault.Keyring, authenticator *authn.Authenticator) *Services {
	return &Services{
		Auth:  NewAuthService(users, authenticator),
		Vault: NewVaultService(secrets, keyring),
		Users: NewUserService(users),
		Rekey: NewRekeyService(secrets, keyring),
		Seal:  keyring,
		Authn: authenticator,
	}
}
