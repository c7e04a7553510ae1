package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Registry constants
const (
	MinRowNumber = 1
	MaxRowNumber = 4
)

// Business validation constants
const (
	MaxNotesLength       = 500
	MaxPurposeLength     = 200
	MaxBookedForLength   = 120
	MaxTeacherNameLength = 120

	// Storage column limits
	MaxBookedForRefLength   = 64
	MaxActorLength          = 64
	MaxIdempotencyKeyLength = 128
)

// SlotAll выбирает все слоты дня в массовых операциях
const SlotAll = "all"

// VisibleStatuses статусы, видимые на чтении (всё, кроме deleted)
var VisibleStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}
