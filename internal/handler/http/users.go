// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-chamber/internal/utils"
	"github.com/MKhiriev/go-chamber/models"
)

// createUser handles POST /users/create (spec.md §4.5, §6). Gated by
// [Handler.withRootKey], not bearer auth — user administration is an
// operator action.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	user, err := h.services.Users.CreateUser(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.ToUserResponse(user), http.StatusCreated) //nolint:errcheck
}

// deleteUser handles POST or DELETE /users/delete (spec.md §6).
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	if err := h.services.Users.DeleteUser(r.Context(), req.Name); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// updateUser handles PUT /users/update (spec.md §6).
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	user, err := h.services.Users.UpdateUser(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.ToUserResponse(user), http.StatusOK) //nolint:errcheck
}

// userRoles handles POST /users/roles (spec.md §6): returns the current
// roles and access level of the named user, looked up fresh.
func (h *Handler) userRoles(w http.ResponseWriter, r *http.Request) {
	var req models.UserRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	user, err := h.services.Users.GetUser(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.ToUserResponse(user), http.StatusOK) //nolint:errcheck
}
