package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/pkg/logger"
	"github.com/m04kA/lab-booking-service/pkg/metrics"
	"github.com/m04kA/lab-booking-service/pkg/ptr"
)

func change(kind domain.ChangeKind, pcID int64, date time.Time, slot domain.SlotID) domain.Change {
	return domain.Change{Kind: kind, BookingID: pcID * 10, PCID: pcID, Date: date, SlotID: slot, At: time.Now()}
}

func newObservers(buffer int) *Observers {
	var m *metrics.Metrics
	return NewObservers(m, logger.NewNop(), buffer)
}

func TestObserversScopedDelivery(t *testing.T) {
	o := newObservers(4)

	all, err := o.Subscribe(Scope{})
	require.NoError(t, err)
	byPC, err := o.Subscribe(Scope{PCID: ptr.Of(int64(1))})
	require.NoError(t, err)
	byDateSlot, err := o.Subscribe(Scope{Date: ptr.Of(testDate), SlotID: ptr.Of(slotLate)})
	require.NoError(t, err)
	assert.Equal(t, 3, o.Subscribers())

	o.Publish(change(domain.ChangeCreated, 1, testDate, slotMorning))
	o.Publish(change(domain.ChangeDeleted, 2, testDate, slotLate))

	assert.Len(t, all.C, 2)
	require.Len(t, byPC.C, 1)
	assert.Equal(t, domain.ChangeCreated, (<-byPC.C).Kind)
	require.Len(t, byDateSlot.C, 1)
	assert.Equal(t, int64(2), (<-byDateSlot.C).PCID)
}

func TestObserversDropWhenBufferFull(t *testing.T) {
	o := newObservers(1)

	slow, err := o.Subscribe(Scope{})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			o.Publish(change(domain.ChangeUpdated, int64(i+1), testDate, slotMorning))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	require.Len(t, slow.C, 1)
	assert.Equal(t, int64(1), (<-slow.C).PCID)
}

func TestSubscriptionClose(t *testing.T) {
	o := newObservers(2)

	sub, err := o.Subscribe(Scope{})
	require.NoError(t, err)

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, o.Subscribers())

	_, open := <-sub.C
	assert.False(t, open)

	o.Publish(change(domain.ChangeCreated, 1, testDate, slotMorning))
}

func TestObserversClose(t *testing.T) {
	o := newObservers(2)

	sub, err := o.Subscribe(Scope{})
	require.NoError(t, err)

	o.Close()
	_, open := <-sub.C
	assert.False(t, open)

	sub.Close()
	o.Publish(change(domain.ChangeCreated, 1, testDate, slotMorning))

	_, err = o.Subscribe(Scope{})
	assert.True(t, errors.Is(err, ErrObserverClosed))
	assert.True(t, errors.Is(err, domain.ErrConflict))
}
