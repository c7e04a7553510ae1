package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/infra/storage/memory"
	"github.com/m04kA/lab-booking-service/pkg/logger"
	"github.com/m04kA/lab-booking-service/pkg/metrics"
)

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

const (
	slotMorning domain.SlotID = "09:00-10:30"
	slotLate    domain.SlotID = "10:30-12:00"
)

type fixture struct {
	store   *memory.Store
	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	var m *metrics.Metrics
	return &fixture{
		store:   store,
		service: NewService(store.PCs(), store.Bookings(), m, logger.NewNop(), 4),
	}
}

func (f *fixture) pc(t *testing.T, number string, status domain.PCStatus) *domain.PC {
	t.Helper()
	pc, err := f.store.PCs().Create(context.Background(), &domain.PC{PCNumber: number, RowNumber: 1, Status: status})
	require.NoError(t, err)
	return pc
}

func (f *fixture) book(t *testing.T, pcID int64, date time.Time, slot domain.SlotID) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		PCID:      pcID,
		Date:      date,
		TimeSlot:  slot,
		BookedFor: domain.BookedFor{Kind: domain.BookedForFreeText, Text: "Batch A"},
		Priority:  domain.PriorityNormal,
		Status:    domain.StatusConfirmed,
		CreatedBy: "admin",
	})
	require.NoError(t, err)
	return b
}

func TestGetAvailabilityGrid(t *testing.T) {
	f := newFixture(t)
	cs01 := f.pc(t, "CS-01", domain.PCStatusActive)
	cs02 := f.pc(t, "CS-02", domain.PCStatusActive)
	booking := f.book(t, cs01.ID, testDate, slotMorning)

	grid, err := f.service.GetAvailability(context.Background(), testDate.Add(15*time.Hour))
	require.NoError(t, err)

	assert.True(t, domain.SameDate(testDate, grid.Date))
	assert.Len(t, grid.Slots, 5)
	assert.Len(t, grid.PCs, 2)

	cell, ok := grid.Cell(cs01.ID, slotMorning)
	require.True(t, ok)
	assert.Equal(t, domain.CellOccupied, cell.State)
	assert.True(t, cell.Occupied)
	require.NotNil(t, cell.Booking)
	assert.Equal(t, booking.ID, cell.Booking.ID)

	for _, slot := range domain.AllSlotIDs() {
		cell, ok := grid.Cell(cs02.ID, slot)
		require.True(t, ok)
		assert.Equal(t, domain.CellAvailable, cell.State, slot)
		assert.False(t, cell.Occupied)
	}

	require.Len(t, grid.Summary, 5)
	assert.Equal(t, slotMorning, grid.Summary[0].SlotID)
	assert.Equal(t, 1, grid.Summary[0].AvailableSpots)
	assert.Equal(t, 2, grid.Summary[0].TotalSpots)
	assert.InDelta(t, 0.5, grid.Summary[0].OccupancyRate(), 0.0001)
	assert.Equal(t, 2, grid.Summary[1].AvailableSpots)

	other, err := f.service.GetAvailability(context.Background(), testDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	cell, _ = other.Cell(cs01.ID, slotMorning)
	assert.Equal(t, domain.CellAvailable, cell.State)
}

func TestGetAvailabilityMaintenanceWithoutBookings(t *testing.T) {
	f := newFixture(t)
	cs01 := f.pc(t, "CS-01", domain.PCStatusActive)
	cs02 := f.pc(t, "CS-02", domain.PCStatusMaintenance)

	grid, err := f.service.GetAvailability(context.Background(), testDate)
	require.NoError(t, err)

	cell, ok := grid.Cell(cs01.ID, slotMorning)
	require.True(t, ok)
	assert.Equal(t, domain.CellAvailable, cell.State)

	for _, slot := range domain.AllSlotIDs() {
		cell, ok := grid.Cell(cs02.ID, slot)
		require.True(t, ok)
		assert.Equal(t, domain.CellUnavailable, cell.State, slot)
		assert.True(t, cell.Occupied)
		assert.Nil(t, cell.Booking)
	}
}

func TestGetAvailabilityStatusOverridesBookings(t *testing.T) {
	f := newFixture(t)
	pc := f.pc(t, "CS-03", domain.PCStatusActive)
	booking := f.book(t, pc.ID, testDate, slotLate)

	pc.Status = domain.PCStatusMaintenance
	_, err := f.store.PCs().Update(context.Background(), pc)
	require.NoError(t, err)

	grid, err := f.service.GetAvailability(context.Background(), testDate)
	require.NoError(t, err)

	for _, slot := range domain.AllSlotIDs() {
		cell, _ := grid.Cell(pc.ID, slot)
		assert.Equal(t, domain.CellUnavailable, cell.State, slot)
		assert.True(t, cell.Occupied)
	}

	cell, _ := grid.Cell(pc.ID, slotLate)
	require.NotNil(t, cell.Booking)
	assert.Equal(t, booking.ID, cell.Booking.ID)
	for _, summary := range grid.Summary {
		assert.True(t, summary.IsFull(), summary.SlotID)
	}
}

func TestGetAvailabilityRecentlyFreed(t *testing.T) {
	f := newFixture(t)
	pc := f.pc(t, "CS-04", domain.PCStatusActive)
	booking := f.book(t, pc.ID, testDate, slotMorning)

	require.NoError(t, booking.ApplyStatus(domain.StatusCompleted, time.Now()))
	_, err := f.store.Bookings().Update(context.Background(), booking)
	require.NoError(t, err)

	grid, err := f.service.GetAvailability(context.Background(), testDate)
	require.NoError(t, err)

	cell, _ := grid.Cell(pc.ID, slotMorning)
	assert.Equal(t, domain.CellRecentlyFreed, cell.State)
	assert.False(t, cell.Occupied)
	assert.Nil(t, cell.Booking)
	assert.Equal(t, 1, grid.Summary[0].AvailableSpots)

	rebooked := f.book(t, pc.ID, testDate, slotMorning)
	grid, err = f.service.GetAvailability(context.Background(), testDate)
	require.NoError(t, err)
	cell, _ = grid.Cell(pc.ID, slotMorning)
	assert.Equal(t, domain.CellOccupied, cell.State)
	assert.Equal(t, rebooked.ID, cell.Booking.ID)
}

func TestGetAvailabilityCancelledAfterCompleted(t *testing.T) {
	f := newFixture(t)
	pc := f.pc(t, "CS-07", domain.PCStatusActive)

	first := f.book(t, pc.ID, testDate, slotMorning)
	require.NoError(t, first.ApplyStatus(domain.StatusCompleted, time.Now()))
	_, err := f.store.Bookings().Update(context.Background(), first)
	require.NoError(t, err)

	second := f.book(t, pc.ID, testDate, slotMorning)
	require.NoError(t, second.ApplyStatus(domain.StatusCancelled, time.Now()))
	_, err = f.store.Bookings().Update(context.Background(), second)
	require.NoError(t, err)

	grid, err := f.service.GetAvailability(context.Background(), testDate)
	require.NoError(t, err)

	cell, _ := grid.Cell(pc.ID, slotMorning)
	assert.Equal(t, domain.CellAvailable, cell.State)
	assert.False(t, cell.Occupied)
	assert.Equal(t, 1, grid.Summary[0].AvailableSpots)
}

func TestGetAvailabilityIgnoresOrphans(t *testing.T) {
	f := newFixture(t)
	pc := f.pc(t, "CS-05", domain.PCStatusActive)
	f.book(t, pc.ID, testDate, slotMorning)
	f.book(t, 999, testDate, slotMorning)

	grid, err := f.service.GetAvailability(context.Background(), testDate)
	require.NoError(t, err)

	_, ok := grid.Cell(999, slotMorning)
	assert.False(t, ok)
	assert.Equal(t, 0, grid.Summary[0].AvailableSpots)
	assert.Equal(t, 1, grid.Summary[0].TotalSpots)
}

func TestGetAvailabilityDeletedBookingFreesCell(t *testing.T) {
	f := newFixture(t)
	pc := f.pc(t, "CS-06", domain.PCStatusActive)
	booking := f.book(t, pc.ID, testDate, slotMorning)

	_, err := f.store.Bookings().Delete(context.Background(), booking.ID)
	require.NoError(t, err)

	grid, err := f.service.GetAvailability(context.Background(), testDate)
	require.NoError(t, err)
	cell, _ := grid.Cell(pc.ID, slotMorning)
	assert.Equal(t, domain.CellAvailable, cell.State)
}
