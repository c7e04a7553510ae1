package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/infra/storage/memory"
	"github.com/m04kA/lab-booking-service/internal/service/bookings"
	"github.com/m04kA/lab-booking-service/pkg/logger"
	"github.com/m04kA/lab-booking-service/pkg/metrics"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.Change) {}

type countingCompleter struct {
	calls atomic.Int32
	err   error
}

func (c *countingCompleter) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	c.calls.Add(1)
	return 0, c.err
}

func TestRunOnceUsesLabTimezone(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	var m *metrics.Metrics
	ledger := bookings.NewService(store.Bookings(), store.PCs(), nopPublisher{}, store.TxManager(), m, logger.NewNop())

	pc, err := store.PCs().Create(ctx, &domain.PC{PCNumber: "CS-01", RowNumber: 1, Status: domain.PCStatusActive})
	require.NoError(t, err)

	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	seed := func(slot domain.SlotID) *domain.Booking {
		b, err := store.Bookings().Create(ctx, &domain.Booking{
			PCID:      pc.ID,
			Date:      date,
			TimeSlot:  slot,
			BookedFor: domain.BookedFor{Kind: domain.BookedForFreeText, Text: "Alice"},
			Priority:  domain.PriorityNormal,
			Status:    domain.StatusConfirmed,
			CreatedBy: "admin",
		})
		require.NoError(t, err)
		return b
	}
	morning := seed("09:00-10:30")
	afternoon := seed("14:00-15:30")

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 05:30 UTC = 11:00 в Asia/Kolkata: первый слот уже закончился
	s := NewScheduler(ledger, loc, time.Minute, logger.NewNop()).
		WithTimeProvider(fixedTime{now: time.Date(2024, 6, 1, 5, 30, 0, 0, time.UTC)})

	count, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := store.Bookings().GetByID(ctx, morning.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)

	got, err = store.Bookings().GetByID(ctx, afternoon.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	count, err = s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStartStop(t *testing.T) {
	completer := &countingCompleter{err: errors.New("storage down")}
	s := NewScheduler(completer, time.UTC, 10*time.Millisecond, logger.NewNop())

	s.Start(context.Background())
	require.Eventually(t, func() bool { return completer.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()

	calls := completer.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, completer.calls.Load())
}

func TestStopOnContextCancel(t *testing.T) {
	completer := &countingCompleter{}
	s := NewScheduler(completer, time.UTC, time.Hour, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancel")
	}
	assert.Equal(t, int32(1), completer.calls.Load())
}
