// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-chamber/internal/logger"
	"github.com/MKhiriev/go-chamber/internal/utils"
)

// unseal handles POST /unseal. It bypasses the seal-gate entirely (it is
// the only way to leave the Sealed state) and authenticates the request
// by the presented root key rather than a bearer token (spec.md §4.6,
// §6).
func (h *Handler) unseal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	presented := r.Header.Get(rootKeyHeader)
	if presented == "" {
		writeError(w, ErrMissingRootKeyHeader)
		return
	}

	if err := h.services.Seal.Unseal(presented); err != nil {
		log.Info().Msg("unseal attempt rejected: wrong root key")
		h.metrics.ObserveUnseal(false)
		writeError(w, err)
		return
	}

	log.Info().Msg("instance unsealed")
	h.metrics.ObserveUnseal(true)
	w.WriteHeader(http.StatusOK)
}

// health handles GET /health. It bypasses the seal-gate so operators and
// orchestrators can probe liveness without presenting any credential
// (spec.md §6).
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK) //nolint:errcheck
}

// metricsHandler handles GET /metrics. It bypasses the seal-gate
// alongside /health (SPEC_FULL.md C15).
func (h *Handler) metricsHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.Handler().ServeHTTP(w, r)
}
