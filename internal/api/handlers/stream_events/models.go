package stream_events

import (
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// ChangeEvent тело SSE события
type ChangeEvent struct {
	Kind      string    `json:"kind"`
	BookingID int64     `json:"bookingId,omitempty"`
	PCID      int64     `json:"pc,omitempty"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"timeSlot,omitempty"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

func fromDomainChange(c domain.Change) ChangeEvent {
	return ChangeEvent{
		Kind:      string(c.Kind),
		BookingID: c.BookingID,
		PCID:      c.PCID,
		Date:      c.Date.Format(domain.DateFormat),
		TimeSlot:  string(c.SlotID),
		Status:    string(c.Status),
		At:        c.At,
	}
}
