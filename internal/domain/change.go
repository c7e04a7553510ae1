package domain

import "time"

// ChangeKind describes what happened to a booking
type ChangeKind string

const (
	ChangeCreated   ChangeKind = "created"
	ChangeUpdated   ChangeKind = "updated"
	ChangeDeleted   ChangeKind = "deleted"
	ChangeCompleted ChangeKind = "completed"
	ChangeCleared   ChangeKind = "cleared"
)

// Change is published after every ledger mutation
type Change struct {
	Kind      ChangeKind
	BookingID int64
	PCID      int64
	Date      time.Time
	SlotID    SlotID
	Status    BookingStatus
	At        time.Time
}

// NewChange builds a change record for a booking
func NewChange(kind ChangeKind, b *Booking, at time.Time) Change {
	return Change{
		Kind:      kind,
		BookingID: b.ID,
		PCID:      b.PCID,
		Date:      b.Date,
		SlotID:    b.TimeSlot,
		Status:    b.Status,
		At:        at,
	}
}
