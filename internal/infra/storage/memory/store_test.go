package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/lab-booking-service/internal/domain"
	bookingstorage "github.com/m04kA/lab-booking-service/internal/infra/storage/booking"
	pcstorage "github.com/m04kA/lab-booking-service/internal/infra/storage/pc"
	"github.com/m04kA/lab-booking-service/pkg/ptr"
)

var date = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func booking(pcID int64, slot domain.SlotID, text string) *domain.Booking {
	return &domain.Booking{
		PCID:      pcID,
		Date:      date,
		TimeSlot:  slot,
		BookedFor: domain.BookedFor{Kind: domain.BookedForFreeText, Text: text},
		Priority:  domain.PriorityNormal,
		Status:    domain.StatusConfirmed,
		CreatedBy: "admin",
	}
}

func TestPCRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().PCs()

	first, err := repo.Create(ctx, &domain.PC{PCNumber: "CS-10", RowNumber: 1, Status: domain.PCStatusActive})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.PC{PCNumber: "CS-2", RowNumber: 1, Status: domain.PCStatusActive})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.PC{PCNumber: "CS-10", RowNumber: 2, Status: domain.PCStatusActive})
	assert.ErrorIs(t, err, pcstorage.ErrPCNumberTaken)

	pcs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, pcs, 2)
	assert.Equal(t, "CS-2", pcs[0].PCNumber)

	first.Status = domain.PCStatusMaintenance
	updated, err := repo.Update(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.PCStatusMaintenance, updated.Status)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), pcstorage.ErrPCNotFound)

	count, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestBookingUniquenessUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, booking(1, "09:00-10:30", "Alice"))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, bookingstorage.ErrSlotOccupied) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
}

func TestBookingDeleteFreesCell(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()

	first, err := repo.Create(ctx, booking(1, "09:00-10:30", "Alice"))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeleted, deleted.Status)

	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, bookingstorage.ErrBookingNotFound)
	_, err = repo.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, bookingstorage.ErrBookingNotFound)

	second, err := repo.Create(ctx, booking(1, "09:00-10:30", "Bob"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	all, err := repo.List(ctx, domain.BookingsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Bob", all[0].BookedFor.Text)
}

func TestBookingUpdateConfirmChecksCell(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()

	_, err := repo.Create(ctx, booking(1, "09:00-10:30", "Alice"))
	require.NoError(t, err)

	pending := booking(1, "09:00-10:30", "Bob")
	pending.Status = domain.StatusPending
	pending, err = repo.Create(ctx, pending)
	require.NoError(t, err)

	pending.Status = domain.StatusConfirmed
	_, err = repo.Update(ctx, pending)
	assert.ErrorIs(t, err, bookingstorage.ErrSlotOccupied)
}

func TestBookingIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()

	b := booking(1, "09:00-10:30", "Alice")
	b.IdempotencyKey = ptr.Of("key-1")
	created, err := repo.Create(ctx, b)
	require.NoError(t, err)

	again := booking(2, "09:00-10:30", "Alice")
	again.IdempotencyKey = ptr.Of("key-1")
	_, err = repo.Create(ctx, again)
	assert.ErrorIs(t, err, bookingstorage.ErrDuplicateIdempotencyKey)

	found, err := repo.GetByIdempotencyKey(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestCompleteElapsed(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()

	yesterday := booking(1, "15:30-17:00", "Old")
	yesterday.Date = date.AddDate(0, 0, -1)
	_, err := repo.Create(ctx, yesterday)
	require.NoError(t, err)

	ended, err := repo.Create(ctx, booking(1, "09:00-10:30", "Morning"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, booking(1, "14:00-15:30", "Afternoon"))
	require.NoError(t, err)

	at := date.Add(11 * time.Hour)
	completed, err := repo.CompleteElapsed(ctx, date, []domain.SlotID{"09:00-10:30"}, at)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	got, err := repo.GetByID(ctx, ended.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, at, *got.CompletedAt)

	// ячейка освобождена, можно бронировать снова
	_, err = repo.Create(ctx, booking(1, "09:00-10:30", "Again"))
	assert.NoError(t, err)
}
