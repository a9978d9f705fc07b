// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveUnseal(true)
	m.ObserveUnseal(false)
	m.ObserveSeal()
	m.ObserveRekey(true)
	m.ObserveAuthzDenial()
	m.ObserveRequest("/secrets/get", 200)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()

	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "chamber_seal_transitions_total")
	require.Contains(t, body, "chamber_rekey_operations_total")
	require.Contains(t, body, "chamber_authz_denials_total")
	require.Contains(t, body, "chamber_http_requests_total")
}
