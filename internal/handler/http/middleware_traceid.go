// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader is the name of the HTTP header used to propagate the
// distributed trace identifier between the client and the server.
const traceIDHeader = "X-Trace-ID"

// withTraceID is an HTTP middleware that attaches a trace ID to every
// request for structured logging and distributed tracing purposes.
//
// Trace ID resolution follows this precedence:
//  1. If the incoming request carries a non-empty X-Trace-ID header, its
//     value is reused so a caller-supplied trace can be continued.
//  2. Otherwise a new random UUID v4 is generated.
//
// The resolved trace ID is attached to a child of [Handler.logger], the
// enriched logger is stored in the request context via zerolog's
// WithContext so [logger.FromRequest] can retrieve it downstream, and the
// trace ID is echoed back in the response header.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var traceID string
		if fromHeader := r.Header.Get(traceIDHeader); fromHeader != "" {
			traceID = fromHeader
		} else {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		r = r.WithContext(l.WithContext(ctx))
		w.Header().Set(traceIDHeader, traceID)

		next.ServeHTTP(w, r)
	})
}
