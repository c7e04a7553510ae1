package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// BookingStatus represents the status of a lab booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusDeleted   BookingStatus = "deleted"
)

// IsValid returns true if the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusDeleted:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions are possible except delete
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusDeleted
}

// CanTransition reports whether a booking may move from one status to another.
// Any non-deleted booking may be deleted; deleted is final.
func CanTransition(from, to BookingStatus) bool {
	if from == StatusDeleted {
		return false
	}
	if to == StatusDeleted {
		return true
	}

	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

// Priority represents the booking priority
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority parses a priority; empty input defaults to normal
func ParsePriority(value string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(value)))
	switch p {
	case "":
		return PriorityNormal, nil
	case PriorityNormal, PriorityHigh, PriorityUrgent:
		return p, nil
	}
	return "", ErrInvalidPriority
}

// BookedForKind tags the booked-for variant
type BookedForKind string

const (
	BookedForStudent  BookedForKind = "student"
	BookedForTeacher  BookedForKind = "teacher"
	BookedForBatch    BookedForKind = "batch"
	BookedForFreeText BookedForKind = "free_text"
)

// BookedFor says whom a booking is for: a student, teacher or batch reference,
// or free text. Ref is empty for free text. Text is the display value.
type BookedFor struct {
	Kind BookedForKind
	Ref  string
	Text string
}

// NewBookedFor builds the variant from the request fields.
// At most one of student, teacher, batch may be set; otherwise text is required.
// Ref kinds default their display text to the reference.
func NewBookedFor(student, teacher, batch *string, text string) (BookedFor, error) {
	text = strings.TrimSpace(text)

	var (
		kind BookedForKind
		ref  string
		set  int
	)
	for _, candidate := range []struct {
		kind  BookedForKind
		value *string
	}{
		{BookedForStudent, student},
		{BookedForTeacher, teacher},
		{BookedForBatch, batch},
	} {
		if candidate.value == nil || strings.TrimSpace(*candidate.value) == "" {
			continue
		}
		set++
		kind = candidate.kind
		ref = strings.TrimSpace(*candidate.value)
	}

	var bf BookedFor
	switch set {
	case 0:
		bf = BookedFor{Kind: BookedForFreeText, Text: text}
	case 1:
		if text == "" {
			text = ref
		}
		bf = BookedFor{Kind: kind, Ref: ref, Text: text}
	default:
		return BookedFor{}, ErrInvalidBookedFor
	}

	if err := bf.Validate(); err != nil {
		return BookedFor{}, err
	}
	return bf, nil
}

// Validate checks the variant invariants
func (b BookedFor) Validate() error {
	switch b.Kind {
	case BookedForFreeText:
		if b.Ref != "" || b.Text == "" {
			return ErrInvalidBookedFor
		}
	case BookedForStudent, BookedForTeacher, BookedForBatch:
		if b.Ref == "" {
			return ErrInvalidBookedFor
		}
		if utf8.RuneCountInString(b.Ref) > MaxBookedForRefLength {
			return ErrBookedForRefTooLong
		}
	default:
		return ErrInvalidBookedFor
	}

	if utf8.RuneCountInString(b.Text) > MaxBookedForLength {
		return ErrBookedForTooLong
	}
	return nil
}

// RefOf returns the reference if the variant is of the given kind
func (b BookedFor) RefOf(kind BookedForKind) *string {
	if b.Kind != kind || b.Ref == "" {
		return nil
	}
	ref := b.Ref
	return &ref
}

// Booking represents a reservation of one PC for one slot on one date
type Booking struct {
	ID          int64
	PCID        int64
	Date        time.Time // midnight UTC
	TimeSlot    SlotID
	BookedFor   BookedFor
	TeacherName string
	Purpose     string
	Notes       *string
	Priority    Priority
	Status      BookingStatus
	CreatedBy   string

	IdempotencyKey *string
	CompletedAt    *time.Time
	CancelledAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Occupies returns true if the booking holds its cell
func (b *Booking) Occupies() bool {
	return b.Status == StatusConfirmed
}

// IsActive is the legacy visibility flag: everything except deleted
func (b *Booking) IsActive() bool {
	return b.Status != StatusDeleted
}

// SameCell returns true if both bookings target the same (pc, date, slot)
func (b *Booking) SameCell(pcID int64, date time.Time, slot SlotID) bool {
	return b.PCID == pcID && SameDate(b.Date, date) && b.TimeSlot == slot
}

// ApplyStatus moves the booking to status, stamping completion and cancellation times
func (b *Booking) ApplyStatus(status BookingStatus, at time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if status == b.Status {
		return nil
	}
	if !CanTransition(b.Status, status) {
		return ErrInvalidTransition
	}

	switch status {
	case StatusCompleted:
		b.CompletedAt = &at
	case StatusCancelled:
		b.CancelledAt = &at
	}
	b.Status = status
	return nil
}

// ValidateDetails checks the free-form fields
func (b *Booking) ValidateDetails() error {
	if utf8.RuneCountInString(b.Purpose) > MaxPurposeLength {
		return ErrPurposeTooLong
	}
	if utf8.RuneCountInString(b.TeacherName) > MaxTeacherNameLength {
		return ErrTeacherNameTooLong
	}
	if b.Notes != nil && utf8.RuneCountInString(*b.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	return b.BookedFor.Validate()
}

// BookingsFilter selects bookings; empty Statuses means every visible status (all but deleted)
type BookingsFilter struct {
	Date     *time.Time
	PCIDs    []int64
	TimeSlot *SlotID
	Statuses []BookingStatus
}

// EffectiveStatuses returns the statuses the filter selects
func (f BookingsFilter) EffectiveStatuses() []BookingStatus {
	if len(f.Statuses) == 0 {
		return VisibleStatuses
	}
	return f.Statuses
}

// Matches reports whether a booking satisfies the filter
func (f BookingsFilter) Matches(b *Booking) bool {
	if f.Date != nil && !SameDate(b.Date, *f.Date) {
		return false
	}
	if f.TimeSlot != nil && b.TimeSlot != *f.TimeSlot {
		return false
	}
	if len(f.PCIDs) > 0 && !containsID(f.PCIDs, b.PCID) {
		return false
	}

	for _, s := range f.EffectiveStatuses() {
		if s == b.Status {
			return true
		}
	}
	return false
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD date into midnight UTC
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DateOf returns the calendar date of t in its own location as midnight UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two dates fall on the same calendar day
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
