// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init constructs and returns a fully configured [chi.Mux] router that
// serves the HTTP surface of spec.md §6.
//
// # Global middleware
//
// Every request passes through, in order:
//   - [middleware.Recoverer] — catches panics and returns 500 rather than
//     crashing the process.
//   - [Handler.withTraceID] — resolves or generates a trace ID and stores
//     an enriched logger in the request context.
//   - withLogging — emits a structured access-log entry after each
//     request completes, never the request body (spec.md §7, P5).
//   - withGZip — transparently decompresses gzip request bodies and
//     compresses responses for clients that advertise support.
//
// # Seal gate
//
// [Handler.withSealGate] wraps every route except /unseal, /health, and
// /metrics (spec.md §4.6, §4.10, P1): while sealed, those routes respond
// 423 before any auth or handler code runs.
//
// # Route groups
//
//	POST   /unseal          — header x-chamber-key; bypasses seal-gate.
//	GET    /health           — bypasses seal-gate.
//	GET    /metrics          — bypasses seal-gate.
//	POST   /login            — seal-gated, no bearer required.
//	/secrets/*, /secrets     — seal-gated + bearer (withAuth).
//	/users/*                 — seal-gated + root key (withRootKey).
//	POST   /binfile          — seal-gated + bearer; the handler itself
//	                            additionally checks x-chamber-key.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	router.Post("/unseal", h.unseal)
	router.Get("/health", h.health)
	router.Get("/metrics", h.metricsHandler)

	router.Group(func(sealed chi.Router) {
		sealed.Use(h.withSealGate)

		sealed.Post("/login", h.login)

		sealed.Group(func(secrets chi.Router) {
			secrets.Use(h.withAuth)

			secrets.Post("/secrets/set", h.setSecret)
			secrets.Post("/secrets/get", h.getSecret)
			secrets.Post("/secrets", h.listSecrets)
			secrets.Put("/secrets", h.updateTags)
			secrets.Delete("/secrets", h.deleteSecret)

			secrets.Post("/binfile", h.binfile)
		})

		sealed.Group(func(users chi.Router) {
			users.Use(h.withRootKey)

			users.Post("/users/create", h.createUser)
			users.Post("/users/delete", h.deleteUser)
			users.Delete("/users/delete", h.deleteUser)
			users.Put("/users/update", h.updateUser)
			users.Post("/users/roles", h.userRoles)
		})
	})

	// Override chi's default 405 with 404 so a caller probing with an
	// unsupported method cannot distinguish an unsupported method from a
	// nonexistent route.
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
