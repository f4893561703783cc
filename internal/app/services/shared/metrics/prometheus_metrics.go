package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector owns its registry so several collectors can coexist in tests.
type MetricsCollector struct {
	registry *prometheus.Registry

	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	bookingsTotal        *prometheus.CounterVec
	transitionsTotal     *prometheus.CounterVec
	reconciledSlotsTotal *prometheus.CounterVec
}

func NewMetricsCollector() *MetricsCollector {
	m := &MetricsCollector{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		bookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appointment_bookings_total",
				Help: "Booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appointment_transitions_total",
				Help: "Appointment lifecycle transitions by event type",
			},
			[]string{"event_type"},
		),
		reconciledSlotsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_registry_reconciled_total",
				Help: "Registry entries repaired by the reconciliation worker",
			},
			[]string{"action"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.bookingsTotal,
		m.transitionsTotal,
		m.reconciledSlotsTotal,
	)
	return m
}

func (m *MetricsCollector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveBooking counts a booking attempt; outcome is "success" or an error kind.
func (m *MetricsCollector) ObserveBooking(outcome string) {
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsCollector) ObserveTransition(eventType string) {
	m.transitionsTotal.WithLabelValues(eventType).Inc()
}

func (m *MetricsCollector) ObserveReconciliation(released, reserved int) {
	m.reconciledSlotsTotal.WithLabelValues("released").Add(float64(released))
	m.reconciledSlotsTotal.WithLabelValues("reserved").Add(float64(reserved))
}

func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
