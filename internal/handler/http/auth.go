// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-chamber/internal/logger"
	"github.com/MKhiriev/go-chamber/internal/utils"
	"github.com/MKhiriev/go-chamber/models"
)

// login handles POST /login (spec.md §4.7, §6). It is gated by the
// seal-gate but not by bearer auth — a caller presents a username and
// password to obtain the bearer token every other route requires.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	token, err := h.services.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Info().Str("username", req.Username).Msg("login rejected")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{ //nolint:errcheck
		AccessToken: token.String(),
		TokenType:   "Bearer",
	}, http.StatusOK)
}
