// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-chamber/internal/logger"
	"github.com/MKhiriev/go-chamber/internal/metrics"
	"github.com/MKhiriev/go-chamber/internal/service"
)

// Handler is the root HTTP handler that wires together all route groups
// and middleware chains for the REST API.
//
// It holds references to the application's service layer, a structured
// logger, and the metrics collectors so that every sub-handler and
// middleware can access business logic and emit consistent,
// context-enriched log entries and counters.
//
// Handler is constructed once at application startup via [NewHandler] and
// its routes are registered by [Handler.Init]. It is not safe to copy a
// Handler after construction.
type Handler struct {
	services *service.Services
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewHandler constructs a [Handler] with the provided service container,
// logger, and metrics collectors.
func NewHandler(services *service.Services, log *logger.Logger, m *metrics.Metrics) *Handler {
	log.Debug().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   log,
		metrics:  m,
	}
}
