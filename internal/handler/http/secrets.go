// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-chamber/internal/utils"
	"github.com/MKhiriev/go-chamber/models"
)

// setSecret handles POST /secrets/set (spec.md §4.3, §4.4, §6). The
// request body's plaintext Value is encrypted by the service layer
// before it ever reaches storage or a log line.
func (h *Handler) setSecret(w http.ResponseWriter, r *http.Request) {
	var req models.SetSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	caller, err := h.callerFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.services.Vault.SetSecret(r.Context(), caller, req); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// getSecret handles POST /secrets/get (spec.md §4.4, §6). Unlike every
// other route, a successful response body is the raw plaintext, not a
// JSON envelope — spec.md §6 lists this endpoint's 200 response as
// "plaintext body".
func (h *Handler) getSecret(w http.ResponseWriter, r *http.Request) {
	var req models.GetSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	caller, err := h.callerFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	plaintext, err := h.services.Vault.GetSecret(r.Context(), caller, req.Key)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(plaintext))
}

// listSecrets handles POST /secrets (spec.md §4.8, §6): metadata only,
// scoped to rows caller dominates, optionally filtered to an exact tag.
func (h *Handler) listSecrets(w http.ResponseWriter, r *http.Request) {
	var req models.ListSecretsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	caller, err := h.callerFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	summaries, err := h.services.Vault.ListSecrets(r.Context(), caller, req.TagFilter)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, summaries, http.StatusOK) //nolint:errcheck
}

// updateTags handles PUT /secrets (spec.md §6).
func (h *Handler) updateTags(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	caller, err := h.callerFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.services.Vault.UpdateTags(r.Context(), caller, req.Key, req.UpdateData); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// deleteSecret handles DELETE /secrets (spec.md §6).
func (h *Handler) deleteSecret(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	caller, err := h.callerFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.services.Vault.DeleteSecret(r.Context(), caller, req.Key); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
