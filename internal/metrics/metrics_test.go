package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsCounts(t *testing.T) {
	m := NewBookingMetrics(prometheus.NewRegistry())
	m.ObserveLookup("found")
	m.ObserveLookup("found")
	m.ObserveLookup("conflict")
	m.ObserveConfirmation("hostel", "missing_whatsapp", 0)
	m.ObserveCreated("auditorium")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.lookupTotal.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookupTotal.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.confirmationTotal.WithLabelValues("hostel", "missing_whatsapp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.createdTotal.WithLabelValues("auditorium")))
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveLookup("found")
	m.ObserveConfirmation("hostel", "success", 0.2)
	m.ObserveCreated("hostel")
}
