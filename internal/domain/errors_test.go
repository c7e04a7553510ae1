package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindAndCode(t *testing.T) {
	slotOccupied := NewError(ErrConflict, "SlotOccupied", "slot is already booked")
	wrapped := fmt.Errorf("%w: pc=1 slot=09:00-10:30", slotOccupied)

	assert.ErrorIs(t, wrapped, slotOccupied)
	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.Equal(t, "ConflictError", KindOf(wrapped))
	assert.Equal(t, "SlotOccupied", CodeOf(wrapped))

	storage := fmt.Errorf("%w: Create - exec: %v", ErrStorage, errors.New("conn reset"))
	assert.Equal(t, "StorageError", KindOf(storage))
	assert.Equal(t, "StorageError", CodeOf(storage))

	plain := errors.New("boom")
	assert.Equal(t, "", KindOf(plain))
	assert.Equal(t, "", CodeOf(plain))
}
