// Package metrics exposes Prometheus counters for booking flows.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics counts lookups, confirmations and created bookings.  A
// nil *BookingMetrics is valid and records nothing.
type BookingMetrics struct {
	lookupTotal       *prometheus.CounterVec
	confirmationTotal *prometheus.CounterVec
	createdTotal      *prometheus.CounterVec
	dispatchLatency   *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		lookupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue",
			Subsystem: "booking",
			Name:      "lookup_total",
			Help:      "Booking lookups by outcome",
		}, []string{"outcome"}),
		confirmationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue",
			Subsystem: "booking",
			Name:      "confirmation_total",
			Help:      "Confirmation dispatches by booking type and result",
		}, []string{"type", "result"}),
		createdTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue",
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Bookings created through the public form",
		}, []string{"type"}),
		dispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "venue",
			Subsystem: "booking",
			Name:      "confirmation_latency_seconds",
			Help:      "Latency of provider confirmation calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.lookupTotal, m.confirmationTotal, m.createdTotal, m.dispatchLatency)
	return m
}

func (m *BookingMetrics) ObserveLookup(outcome string) {
	if m == nil {
		return
	}
	m.lookupTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveConfirmation(bookingType, result string, seconds float64) {
	if m == nil {
		return
	}
	m.confirmationTotal.WithLabelValues(bookingType, result).Inc()
	if seconds > 0 {
		m.dispatchLatency.WithLabelValues(bookingType).Observe(seconds)
	}
}

func (m *BookingMetrics) ObserveCreated(bookingType string) {
	if m == nil {
		return
	}
	m.createdTotal.WithLabelValues(bookingType).Inc()
}
