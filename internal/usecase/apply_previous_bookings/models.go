package apply_previous_bookings

import (
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// Request запрос на копирование бронирований
type Request struct {
	TargetDate string  // YYYY-MM-DD
	SourceDate *string // по умолчанию TargetDate - 1 день
	Actor      string
}

// Conflict запись, которую не удалось скопировать
type Conflict struct {
	BookingID int64         `json:"bookingId"`
	PCID      int64         `json:"pc"`
	PCNumber  string        `json:"pcNumber"`
	TimeSlot  domain.SlotID `json:"timeSlot"`
	BookedFor string        `json:"bookedFor"`
	Reason    string        `json:"reason"`
	Message   string        `json:"message"`
}

// Response результат копирования
// AppliedCount + SkippedCount всегда равно числу исходных бронирований
type Response struct {
	SourceDate   time.Time
	TargetDate   time.Time
	AppliedCount int
	SkippedCount int
	Conflicts    []Conflict
	Applied      []*domain.Booking
	PCNumbers    map[int64]string
}

// PreviousResponse подтвержденные бронирования предыдущего дня
type PreviousResponse struct {
	SourceDate time.Time
	Bookings   []*domain.Booking
	PCNumbers  map[int64]string
}
