// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the application's HTTP transport server.
//
// Unlike a deployment that also exposes a gRPC transport, this vault
// speaks HTTP only (spec.md §6): the package provides orchestration for
// its lifecycle alone, including startup, signal handling, and graceful
// shutdown.
package server
