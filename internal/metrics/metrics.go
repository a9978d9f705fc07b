// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes Prometheus counters for the vault's
// security-relevant state transitions: seal/unseal, re-key, and
// authorization denials (SPEC_FULL.md C15). It is ambient observability,
// not the audit-log tamper-evidence the spec explicitly excludes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector registered against a private registry, so
// importing this package never pollutes the default global registry.
type Metrics struct {
	registry *prometheus.Registry

	sealTransitions *prometheus.CounterVec
	rekeyOperations *prometheus.CounterVec
	authzDenials    prometheus.Counter
	httpRequests    *prometheus.CounterVec
}

// New constructs a Metrics instance with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		sealTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chamber",
			Subsystem: "seal",
			Name:      "transitions_total",
			Help:      "Total number of seal state transitions, labeled by result.",
		}, []string{"transition"}),
		rekeyOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chamber",
			Subsystem: "rekey",
			Name:      "operations_total",
			Help:      "Total number of re-key pipeline invocations, labeled by outcome.",
		}, []string{"outcome"}),
		authzDenials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chamber",
			Subsystem: "authz",
			Name:      "denials_total",
			Help:      "Total number of secret operations rejected by the authorization predicate.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chamber",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled, labeled by route and status.",
		}, []string{"route", "status"}),
	}

	registry.MustRegister(m.sealTransitions, m.rekeyOperations, m.authzDenials, m.httpRequests)
	return m
}

// Handler returns an http.Handler serving this Metrics' collectors in
// Prometheus exposition format, mounted at GET /metrics alongside /health
// (both bypass the seal-gate).
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveUnseal records a seal-state transition attempt. ok distinguishes
// a successful unseal from a rejected one (wrong root key).
func (m *Metrics) ObserveUnseal(ok bool) {
	if ok {
		m.sealTransitions.WithLabelValues("unsealed").Inc()
		return
	}
	m.sealTransitions.WithLabelValues("rejected").Inc()
}

// ObserveSeal records an administrative re-seal.
func (m *Metrics) ObserveSeal() {
	m.sealTransitions.WithLabelValues("sealed").Inc()
}

// ObserveRekey records the outcome of a re-key pipeline run.
func (m *Metrics) ObserveRekey(ok bool) {
	if ok {
		m.rekeyOperations.WithLabelValues("committed").Inc()
		return
	}
	m.rekeyOperations.WithLabelValues("aborted").Inc()
}

// ObserveAuthzDenial records one secret operation rejected by the
// access-level/role-whitelist predicate.
func (m *Metrics) ObserveAuthzDenial() {
	m.authzDenials.Inc()
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(route string, status int) {
	m.httpRequests.WithLabelValues(route, http.StatusText(status)).Inc()
}
