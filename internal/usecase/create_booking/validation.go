package create_booking

import (
	"strings"
	"unicode/utf8"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/pkg/ptr"
)

// buildBooking валидирует запрос и собирает черновик бронирования
func buildBooking(req *Request) (*domain.Booking, error) {
	if req.PCID <= 0 {
		return nil, ErrInvalidPCID
	}

	createdBy := strings.TrimSpace(req.CreatedBy)
	if createdBy == "" {
		return nil, ErrMissingActor
	}
	if utf8.RuneCountInString(createdBy) > domain.MaxActorLength {
		return nil, domain.ErrActorTooLong
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	slot, err := domain.ParseSlot(req.TimeSlot)
	if err != nil {
		return nil, err
	}

	bookedFor, err := domain.NewBookedFor(req.Student, req.Teacher, req.Batch, req.BookedFor)
	if err != nil {
		return nil, err
	}

	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	var key *string
	if req.IdempotencyKey != nil {
		key = ptr.NilIfZero(strings.TrimSpace(*req.IdempotencyKey))
	}
	if key != nil && utf8.RuneCountInString(*key) > domain.MaxIdempotencyKeyLength {
		return nil, domain.ErrIdempotencyKeyTooLong
	}

	booking := &domain.Booking{
		PCID:           req.PCID,
		Date:           date,
		TimeSlot:       slot.ID,
		BookedFor:      bookedFor,
		TeacherName:    strings.TrimSpace(req.TeacherName),
		Purpose:        strings.TrimSpace(req.Purpose),
		Notes:          req.Notes,
		Priority:       priority,
		Status:         domain.StatusConfirmed,
		CreatedBy:      createdBy,
		IdempotencyKey: key,
	}

	if err := booking.ValidateDetails(); err != nil {
		return nil, err
	}
	return booking, nil
}
