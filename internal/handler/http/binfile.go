// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-chamber/internal/logger"
)

// maxKeyFileUploadBytes bounds the multipart body /binfile accepts. A
// key-file is a handful of fixed-size fields (spec.md §4.1); anything
// this large is not a legitimate upload.
const maxKeyFileUploadBytes = 1 << 20 // 1 MiB

// binfile handles POST /binfile (spec.md §4.9, §6, C9). spec.md §6 lists
// this route's Auth column as plain Bearer, but §4.9 step 1 requires
// verifying the uploader holds the current unseal key — so this handler,
// not the route's middleware chain, reads the x-chamber-key header and
// hands it straight to the rekey service, which performs the actual
// verification (via vault.BeginRekey) before touching anything (spec.md
// §4.9, P6). A caller with a valid bearer token but the wrong root key
// gets exactly the same 403 Forbidden either way.
func (h *Handler) binfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	presentedRootKey := r.Header.Get(rootKeyHeader)
	if presentedRootKey == "" {
		writeError(w, ErrMissingRootKeyHeader)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxKeyFileUploadBytes)
	if err := r.ParseMultipartForm(maxKeyFileUploadBytes); err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}
	defer file.Close()

	newKeyFileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, ErrInvalidJSON)
		return
	}

	if err := h.services.Rekey.Rekey(r.Context(), presentedRootKey, newKeyFileBytes); err != nil {
		log.Error().Err(err).Msg("rekey failed")
		h.metrics.ObserveRekey(false)
		writeError(w, err)
		return
	}

	h.metrics.ObserveRekey(true)
	w.WriteHeader(http.StatusOK)
}
