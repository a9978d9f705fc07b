// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/internal/utils"
)

// callerFromRequest resolves the store.Caller (access level + roles) the
// authorization algebra evaluates, by loading the current user row for
// the username [withAuth] verified and placed in the request context.
// Access level and roles are looked up fresh on every call rather than
// baked into the token, so a revoked role or lowered access level takes
// effect on the caller's very next request rather than only after the
// token expires.
func (h *Handler) callerFromRequest(r *http.Request) (store.Caller, error) {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		return store.Caller{}, fmt.Errorf("handler: no authenticated username in request context")
	}

	user, err := h.services.Users.GetUser(r.Context(), username)
	if err != nil {
		return store.Caller{}, err
	}

	return store.Caller{AccessLevel: user.AccessLevel, Roles: user.Roles}, nil
}
