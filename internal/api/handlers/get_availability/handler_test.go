package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/infra/storage/memory"
	"github.com/m04kA/lab-booking-service/internal/service/availability"
	"github.com/m04kA/lab-booking-service/pkg/logger"
	"github.com/m04kA/lab-booking-service/pkg/metrics"
)

func TestHandleReturnsGrid(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	cs01, err := store.PCs().Create(ctx, &domain.PC{PCNumber: "CS-01", RowNumber: 1, Status: domain.PCStatusActive})
	require.NoError(t, err)
	cs02, err := store.PCs().Create(ctx, &domain.PC{PCNumber: "CS-02", RowNumber: 1, Status: domain.PCStatusMaintenance})
	require.NoError(t, err)

	date, err := domain.ParseDate("2024-06-01")
	require.NoError(t, err)
	_, err = store.Bookings().Create(ctx, &domain.Booking{
		PCID:      cs01.ID,
		Date:      date,
		TimeSlot:  "10:30-12:00",
		BookedFor: domain.BookedFor{Kind: domain.BookedForFreeText, Text: "Alice"},
		Priority:  domain.PriorityNormal,
		Status:    domain.StatusConfirmed,
		CreatedBy: "admin",
	})
	require.NoError(t, err)

	var m *metrics.Metrics
	service := availability.NewService(store.PCs(), store.Bookings(), m, logger.NewNop(), 0)

	router := mux.NewRouter()
	router.HandleFunc("/api/lab/availability/{date}", NewHandler(service, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lab/availability/2024-06-01", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, "2024-06-01", resp.Date)
	assert.Len(t, resp.TimeSlots, 5)
	assert.Len(t, resp.PCs, 2)

	cs01Row := resp.Grid[strconv.FormatInt(cs01.ID, 10)]
	require.Len(t, cs01Row, 5)
	assert.True(t, cs01Row["10:30-12:00"].IsOccupied)
	assert.Equal(t, "occupied", cs01Row["10:30-12:00"].State)
	require.NotNil(t, cs01Row["10:30-12:00"].Booking)
	assert.Equal(t, "Alice", cs01Row["10:30-12:00"].Booking.BookedFor)
	assert.Equal(t, "CS-01", cs01Row["10:30-12:00"].Booking.PCNumber)
	assert.False(t, cs01Row["09:00-10:30"].IsOccupied)
	assert.Nil(t, cs01Row["09:00-10:30"].Booking)

	cs02Row := resp.Grid[strconv.FormatInt(cs02.ID, 10)]
	assert.Equal(t, "unavailable", cs02Row["09:00-10:30"].State)
	assert.True(t, cs02Row["09:00-10:30"].IsOccupied)

	for _, s := range resp.Summary {
		assert.Equal(t, 2, s.TotalSpots)
		if s.TimeSlot == "10:30-12:00" {
			assert.Equal(t, 0, s.AvailableSpots)
			assert.True(t, s.IsFull)
			assert.InDelta(t, 1.0, s.OccupancyRate, 0.001)
		} else {
			assert.Equal(t, 1, s.AvailableSpots)
		}
	}
}

func TestHandleRejectsBadDate(t *testing.T) {
	var m *metrics.Metrics
	store := memory.NewStore()
	service := availability.NewService(store.PCs(), store.Bookings(), m, logger.NewNop(), 0)

	router := mux.NewRouter()
	router.HandleFunc("/api/lab/availability/{date}", NewHandler(service, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lab/availability/01-06-2024", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
