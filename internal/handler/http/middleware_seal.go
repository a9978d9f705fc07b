// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// withSealGate is the seal-gate middleware (C6 enforcement, spec.md §4.6,
// §4.10, P1). It is the first middleware in the chain for every route
// except /unseal, /health, and /metrics: if the instance is sealed, it
// responds 423 Locked and never invokes the downstream handler or any
// later middleware, including authentication — so a sealed instance
// never evaluates a bearer token or root key at all (spec.md §7d).
//
// The seal check itself only acquires the keyring's lock for the O(1)
// read; it is never held across the downstream handler (spec.md §5).
func (h *Handler) withSealGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.services.Seal.IsSealed() {
			http.Error(w, "instance is sealed", http.StatusLocked)
			return
		}
		next.ServeHTTP(w, r)
	})
}
