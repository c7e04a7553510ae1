package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/lab/pcs", 200, time.Millisecond)
		m.ObserveDBQuery("select", time.Millisecond, nil)
		m.SetDBPoolStats(1, 1, 0)
		m.IncBooking("created")
		m.AddBulkRecords("clear", "cleared", 3)
		m.AddCompleted(2)
		m.IncEventsDropped()
		m.SetEventSubscribers(1)
		m.IncIdempotentReplay()
	})
}

func TestCounters(t *testing.T) {
	m := NewWithRegisterer("lab-booking", prometheus.NewRegistry())

	m.IncBooking("created")
	m.IncBooking("created")
	m.IncBooking("conflict")
	m.AddBulkRecords("apply_previous", "applied", 4)
	m.AddBulkRecords("apply_previous", "skipped", 0)
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues("lab-booking", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues("lab-booking", "conflict")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.bulkRecordsTotal.WithLabelValues("lab-booking", "apply_previous", "applied")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.dbQueryDuration))
}
