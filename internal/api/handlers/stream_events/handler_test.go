package stream_events

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/service/availability"
	"github.com/m04kA/lab-booking-service/pkg/logger"
	"github.com/m04kA/lab-booking-service/pkg/metrics"
)

func TestHandleStreamsScopedChanges(t *testing.T) {
	var m *metrics.Metrics
	observers := availability.NewObservers(m, logger.NewNop(), 4)
	t.Cleanup(observers.Close)

	srv := httptest.NewServer(http.HandlerFunc(NewHandler(observers, logger.NewNop()).Handle))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?pc=1&date=2024-06-01", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	require.Eventually(t, func() bool { return observers.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	date, err := domain.ParseDate("2024-06-01")
	require.NoError(t, err)
	observers.Publish(domain.Change{Kind: domain.ChangeCreated, BookingID: 7, PCID: 2, Date: date, SlotID: "09:00-10:30"})
	observers.Publish(domain.Change{Kind: domain.ChangeCreated, BookingID: 8, PCID: 1, Date: date, SlotID: "09:00-10:30", Status: domain.StatusConfirmed})

	reader := bufio.NewReader(resp.Body)
	eventLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: created\n", eventLine)

	dataLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dataLine, "data: "))

	var event ChangeEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(dataLine, "data: ")), &event))
	assert.Equal(t, int64(8), event.BookingID)
	assert.Equal(t, int64(1), event.PCID)
	assert.Equal(t, "2024-06-01", event.Date)
	assert.Equal(t, "confirmed", event.Status)

	cancel()
	require.Eventually(t, func() bool { return observers.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHandleRejectsBadScope(t *testing.T) {
	var m *metrics.Metrics
	observers := availability.NewObservers(m, logger.NewNop(), 4)

	rec := httptest.NewRecorder()
	NewHandler(observers, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/lab/events?timeSlot=13:30-14:00", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, observers.Subscribers())
}

func TestHandleClosedRegistry(t *testing.T) {
	var m *metrics.Metrics
	observers := availability.NewObservers(m, logger.NewNop(), 4)
	observers.Close()

	rec := httptest.NewRecorder()
	NewHandler(observers, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/lab/events", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
