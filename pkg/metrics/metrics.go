// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every collector registered by the service.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	ReservationsCreated prometheus.Counter
	BookingConflicts    prometheus.Counter
	PaymentsProcessed   *prometheus.CounterVec
	ExpiredPayments     prometheus.Counter
}

// New registers and returns the service collectors.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		ReservationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Reservations successfully created.",
			ConstLabels: constLabels,
		}),

		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because of a date overlap.",
			ConstLabels: constLabels,
		}),

		PaymentsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "payments_processed_total",
			Help:        "Payments processed, partitioned by outcome.",
			ConstLabels: constLabels,
		}, []string{"status"}),

		ExpiredPayments: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "payments_expired_total",
			Help:        "Pending payments marked failed by the expiry sweep.",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest records one finished HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// The increment helpers below are nil-safe so that callers can hold a nil
// *Metrics when metrics are disabled in config.

// IncReservationCreated counts one successfully created reservation.
func (m *Metrics) IncReservationCreated() {
	if m == nil {
		return
	}
	m.ReservationsCreated.Inc()
}

// IncBookingConflict counts one booking rejected due to a date overlap.
func (m *Metrics) IncBookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflicts.Inc()
}

// IncPaymentProcessed counts one processed payment by outcome status.
func (m *Metrics) IncPaymentProcessed(status string) {
	if m == nil {
		return
	}
	m.PaymentsProcessed.WithLabelValues(status).Inc()
}

// AddExpiredPayments counts pending payments failed by the expiry sweep.
func (m *Metrics) AddExpiredPayments(n int) {
	if m == nil {
		return
	}
	m.ExpiredPayments.Add(float64(n))
}
