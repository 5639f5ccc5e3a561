package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("salon-scheduler")

	m.IncBookingCreated("single")
	m.IncBookingCreated("single")
	m.IncBookingRejected("Overlap")
	m.ObserveDBQuery("exec", 0.01, errors.New("boom"))
	m.ObserveHTTP("POST", "/api/v1/bookings", "201", 0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("single")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingRejections.WithLabelValues("Overlap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("exec")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated("single")
		m.IncBookingRejected("Overlap")
		m.IncBookingCancelled("admin")
		m.IncEarlierFulfilled()
		m.IncCache("hit")
		m.ObserveHTTP("GET", "/", "200", 0)
		m.ObserveDBQuery("query", 0, nil)
		m.SetDBConnections(1, 1, 0)
	})
}

func TestNew_TwiceDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		New("a")
		New("b")
	})
}
