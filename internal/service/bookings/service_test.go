package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/infra/storage/memory"
	"github.com/m04kA/lab-booking-service/internal/service/bookings/models"
	"github.com/m04kA/lab-booking-service/pkg/logger"
	"github.com/m04kA/lab-booking-service/pkg/metrics"
	"github.com/m04kA/lab-booking-service/pkg/ptr"
)

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingPublisher struct {
	mu      sync.Mutex
	changes []domain.Change
}

func (p *recordingPublisher) Publish(change domain.Change) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, change)
}

func (p *recordingPublisher) kinds() []domain.ChangeKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]domain.ChangeKind, 0, len(p.changes))
	for _, c := range p.changes {
		kinds = append(kinds, c.Kind)
	}
	return kinds
}

type fixture struct {
	store     *memory.Store
	service   *Service
	publisher *recordingPublisher
	pc        *domain.PC
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	publisher := &recordingPublisher{}

	pc, err := store.PCs().Create(context.Background(), &domain.PC{PCNumber: "CS-01", RowNumber: 1, Status: domain.PCStatusActive})
	require.NoError(t, err)

	var m *metrics.Metrics
	s := NewService(store.Bookings(), store.PCs(), publisher, store.TxManager(), m, logger.NewNop()).
		WithTimeProvider(fixedTime{now: testDate.Add(12 * time.Hour)})

	return &fixture{store: store, service: s, publisher: publisher, pc: pc}
}

func (f *fixture) seed(t *testing.T, slot domain.SlotID, status domain.BookingStatus, date time.Time) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		PCID:      f.pc.ID,
		Date:      date,
		TimeSlot:  slot,
		BookedFor: domain.BookedFor{Kind: domain.BookedForFreeText, Text: "Alice"},
		Priority:  domain.PriorityNormal,
		Status:    status,
		CreatedBy: "admin",
	})
	require.NoError(t, err)
	return b
}

func TestGetByIDAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seed(t, "09:00-10:30", domain.StatusConfirmed, testDate)
	f.seed(t, "10:30-12:00", domain.StatusConfirmed, testDate.AddDate(0, 0, 1))

	got, err := f.service.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS-01", got.PCNumber)
	assert.Equal(t, "09:00 AM - 10:30 AM", got.TimeSlotLabel)
	assert.True(t, got.IsActive)

	list, err := f.service.List(ctx, &models.ListBookingsRequest{Date: ptr.Of("2024-06-01")})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, b.ID, list.Bookings[0].ID)

	list, err = f.service.List(ctx, &models.ListBookingsRequest{TimeSlot: ptr.Of("10:30 AM - 12:00 PM")})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)

	_, err = f.service.List(ctx, &models.ListBookingsRequest{Status: ptr.Of("deleted")})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.service.List(ctx, &models.ListBookingsRequest{Date: ptr.Of("01/06/2024")})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = f.service.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seed(t, "09:00-10:30", domain.StatusConfirmed, testDate)

	updated, err := f.service.Update(ctx, b.ID, &models.UpdateBookingRequest{
		Batch:    ptr.Of("batch-7"),
		Purpose:  ptr.Of(" Python lab "),
		Priority: ptr.Of("high"),
	})
	require.NoError(t, err)
	assert.Equal(t, "batch", updated.BookedForKind)
	assert.Equal(t, "batch-7", *updated.Batch)
	assert.Equal(t, "batch-7", updated.BookedFor)
	assert.Equal(t, "Python lab", updated.Purpose)
	assert.Equal(t, "high", updated.Priority)

	updated, err = f.service.Update(ctx, b.ID, &models.UpdateBookingRequest{BookedFor: ptr.Of("Morning batch")})
	require.NoError(t, err)
	assert.Equal(t, "batch", updated.BookedForKind)
	assert.Equal(t, "Morning batch", updated.BookedFor)

	updated, err = f.service.Update(ctx, b.ID, &models.UpdateBookingRequest{Status: ptr.Of("completed")})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
	assert.NotNil(t, updated.CompletedAt)

	_, err = f.service.Update(ctx, b.ID, &models.UpdateBookingRequest{Status: ptr.Of("confirmed")})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "ConflictError", domain.KindOf(err))

	assert.Equal(t, []domain.ChangeKind{domain.ChangeUpdated, domain.ChangeUpdated, domain.ChangeCompleted}, f.publisher.kinds())
}

func TestUpdateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seed(t, "09:00-10:30", domain.StatusConfirmed, testDate)

	_, err := f.service.Update(ctx, b.ID, &models.UpdateBookingRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	_, err = f.service.Update(ctx, b.ID, &models.UpdateBookingRequest{Student: ptr.Of("s"), Teacher: ptr.Of("t")})
	assert.ErrorIs(t, err, domain.ErrInvalidBookedFor)

	_, err = f.service.Update(ctx, b.ID, &models.UpdateBookingRequest{Priority: ptr.Of("asap")})
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)

	_, err = f.service.Update(ctx, b.ID, &models.UpdateBookingRequest{Status: ptr.Of("deleted")})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.service.Update(ctx, 404, &models.UpdateBookingRequest{Purpose: ptr.Of("x")})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	got, err := f.service.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
}

func TestUpdateConfirmPendingConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "09:00-10:30", domain.StatusConfirmed, testDate)
	pending := f.seed(t, "09:00-10:30", domain.StatusPending, testDate)

	_, err := f.service.Update(ctx, pending.ID, &models.UpdateBookingRequest{Status: ptr.Of("confirmed")})
	assert.ErrorIs(t, err, ErrSlotOccupied)
	assert.Equal(t, "SlotOccupied", domain.CodeOf(err))
}

func TestDeleteFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seed(t, "09:00-10:30", domain.StatusConfirmed, testDate)

	deleted, err := f.service.Delete(ctx, b.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "deleted", deleted.Status)
	assert.False(t, deleted.IsActive)

	_, err = f.service.Delete(ctx, b.ID, "admin")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	list, err := f.service.List(ctx, &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Zero(t, list.Count)

	// слот снова свободен
	f.seed(t, "09:00-10:30", domain.StatusConfirmed, testDate)
	assert.Equal(t, []domain.ChangeKind{domain.ChangeDeleted}, f.publisher.kinds())
}

func TestCompleteElapsed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "09:00-10:30", domain.StatusConfirmed, testDate)
	f.seed(t, "12:00-13:30", domain.StatusConfirmed, testDate)
	f.seed(t, "15:30-17:00", domain.StatusConfirmed, testDate.AddDate(0, 0, -1))

	count, err := f.service.CompleteElapsed(ctx, testDate.Add(13*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, err := f.service.List(ctx, &models.ListBookingsRequest{Status: ptr.Of("confirmed")})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "12:00-13:30", list.Bookings[0].TimeSlot)

	assert.Equal(t, []domain.ChangeKind{domain.ChangeCompleted, domain.ChangeCompleted}, f.publisher.kinds())
}
