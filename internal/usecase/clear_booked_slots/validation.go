package clear_booked_slots

import (
	"strings"
	"unicode/utf8"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// buildFilter валидирует запрос и собирает фильтр подтвержденных бронирований
func buildFilter(req *Request) (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter

	if !req.ConfirmClear {
		return filter, ErrConfirmationRequired
	}
	if strings.TrimSpace(req.Actor) == "" {
		return filter, ErrMissingActor
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Actor)) > domain.MaxActorLength {
		return filter, domain.ErrActorTooLong
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return filter, err
	}
	filter.Date = &date

	if !strings.EqualFold(strings.TrimSpace(req.TimeSlot), domain.SlotAll) {
		slot, err := domain.ParseSlot(req.TimeSlot)
		if err != nil {
			return filter, err
		}
		filter.TimeSlot = &slot.ID
	}

	for _, id := range req.PCIDs {
		if id <= 0 {
			return filter, ErrInvalidPCID
		}
	}
	filter.PCIDs = req.PCIDs
	filter.Statuses = []domain.BookingStatus{domain.StatusConfirmed}

	return filter, nil
}
