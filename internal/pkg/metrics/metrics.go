// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the service's Prometheus collectors.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BookingsTotal       *prometheus.CounterVec
	SlotCacheTotal      *prometheus.CounterVec
}

// New registers the collectors on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors on the given registry. Tests pass
// a fresh registry to avoid duplicate registration across cases.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests by method, path and status code.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by method and path.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_created_total",
				Help: "Booking creation attempts by result.",
			},
			[]string{"result"},
		),
		SlotCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_cache_requests_total",
				Help: "Slot cache lookups by result.",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingsTotal,
		m.SlotCacheTotal,
	)
	return m
}

// BookingCreated records a booking creation attempt outcome.
func (m *Metrics) BookingCreated(result string) {
	m.BookingsTotal.WithLabelValues(result).Inc()
}

// SlotCacheRequest records a slot cache lookup outcome.
func (m *Metrics) SlotCacheRequest(result string) {
	m.SlotCacheTotal.WithLabelValues(result).Inc()
}
