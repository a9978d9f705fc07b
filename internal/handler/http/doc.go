// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the vault (C10).
// It provides middleware, route handlers, and request/response utilities
// for the REST API described in spec.md §6. The fixed middleware order —
// seal-gate, then authentication, then handler — is enforced in routes.go
// and is the single place request authorization decisions are made before
// a handler ever touches the service layer.
package http
