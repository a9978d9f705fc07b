// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-chamber/internal/authn"
	"github.com/MKhiriev/go-chamber/internal/logger"
	"github.com/MKhiriev/go-chamber/internal/utils"
)

// withAuth is the bearer-token authentication middleware (C7, spec.md
// §4.7, §4.10). It parses the Authorization header, verifies the token's
// signature and expiry, and stores the verified subject username in the
// request context so handlers never re-parse the token themselves — a
// token only ever authorizes the subject it names (P8).
//
// Runs after the seal-gate: a sealed instance never reaches this
// middleware (spec.md §7d).
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := authn.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Info().Err(err).Msg("auth: missing or malformed bearer token")
			writeError(w, err)
			return
		}

		token, err := h.services.Authn.Verify(tokenString)
		if err != nil {
			log.Info().Err(err).Msg("auth: token verification failed")
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UsernameCtxKey, token.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
