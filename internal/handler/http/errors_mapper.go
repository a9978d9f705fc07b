// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-chamber/internal/authn"
	"github.com/MKhiriev/go-chamber/internal/crypto"
	"github.com/MKhiriev/go-chamber/internal/service"
	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/internal/utils"
	"github.com/MKhiriev/go-chamber/internal/vault"
)

// errorResponse pairs the status code and body message this layer sends
// for a given sentinel error.
type errorResponse struct {
	message string
	status  int
}

// errorStatusMap maps every sentinel error the service and storage layers
// can return to the wire status spec.md §6/§7 assigns it. Two entries
// encode deliberate opacity decisions (see spec.md §7 and DESIGN.md):
//
//   - store.ErrNotFound always maps to 500, never a distinct 404 — a
//     genuinely absent key and one the caller merely cannot see must be
//     indistinguishable on the wire (P7), and spec.md §6 never lists 404
//     as a status this system uses at all.
//   - crypto.ErrCryptoFailure maps to 500 with no further detail — a
//     caller must never learn whether a decryption failure was a tag,
//     nonce, or key mismatch (spec.md §7a).
var errorStatusMap = map[error]errorResponse{
	ErrInvalidJSON:          {message: "invalid JSON body", status: http.StatusBadRequest},
	ErrMissingRootKeyHeader: {message: "forbidden", status: http.StatusForbidden},

	service.ErrInvalidRequest: {message: "invalid request", status: http.StatusBadRequest},

	store.ErrBadCredentials: {message: "invalid credentials", status: http.StatusUnauthorized},
	store.ErrDuplicateKey:   {message: "key already exists", status: http.StatusBadRequest},
	store.ErrDuplicateUser:  {message: "user already exists", status: http.StatusBadRequest},
	store.ErrNotFound:       {message: "internal server error", status: http.StatusInternalServerError},
	store.ErrStorage:        {message: "internal server error", status: http.StatusInternalServerError},

	authn.ErrInvalidToken:      {message: "invalid token", status: http.StatusUnauthorized},
	authn.ErrMissingAuthHeader: {message: "missing or malformed authorization header", status: http.StatusUnauthorized},

	vault.ErrForbidden:       {message: "forbidden", status: http.StatusForbidden},
	vault.ErrLocked:          {message: "instance is sealed", status: http.StatusLocked},
	vault.ErrRekeyInProgress: {message: "internal server error", status: http.StatusInternalServerError},

	crypto.ErrCryptoFailure: {message: "internal server error", status: http.StatusInternalServerError},
}

// responseFromError looks up err against errorStatusMap via [errors.Is],
// falling back to a generic 500 for anything unrecognized so an
// unexpected internal error never leaks its message to the caller.
func responseFromError(err error) errorResponse {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{message: "internal server error", status: http.StatusInternalServerError}
}

// writeError writes the mapped status and a {"error": message} JSON body
// for err, and returns the status written so callers can feed it to
// metrics/logging.
func writeError(w http.ResponseWriter, err error) int {
	resp := responseFromError(err)
	utils.WriteJSON(w, map[string]string{"error": resp.message}, resp.status) //nolint:errcheck
	return resp.status
}
