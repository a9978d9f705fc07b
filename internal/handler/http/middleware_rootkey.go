// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-chamber/internal/vault"
)

// rootKeyHeader is the header name operator-only endpoints require,
// named directly after the vault's own name (spec.md §6, §9).
const rootKeyHeader = "x-chamber-key"

// withRootKey is the operator-authentication middleware for the /users/*
// administration routes (spec.md §6). Unlike the bearer-token middleware
// guarding /secrets/*, these endpoints require the root unseal key itself
// — creating, deleting, or re-leveling a user is an operator action, not
// something any authenticated caller may do to another account.
func (h *Handler) withRootKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		presented := r.Header.Get(rootKeyHeader)
		if presented == "" {
			writeError(w, ErrMissingRootKeyHeader)
			return
		}

		if !h.services.Seal.VerifyRootKey(presented) {
			writeError(w, vault.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
