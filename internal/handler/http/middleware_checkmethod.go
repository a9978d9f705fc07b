// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns a handler suitable for [chi.Mux.MethodNotAllowed].
// Chi's default behavior responds 405 when a path matches a registered
// route but the method doesn't; this returns 404 instead, so a caller
// probing with an unsupported method learns nothing about which routes
// exist — the same opacity principle spec.md P7 applies to secret
// existence, extended to route existence.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
