package bookings

import (
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или удалено
	ErrBookingNotFound = domain.NewError(domain.ErrNotFound, "BookingNotFound", "booking not found")

	// ErrSlotOccupied возвращается, когда подтверждение конфликтует с другим бронированием ячейки
	ErrSlotOccupied = domain.NewError(domain.ErrConflict, "SlotOccupied", "slot is already booked")

	// ErrEmptyUpdate возвращается, когда в запросе на обновление нет ни одного поля
	ErrEmptyUpdate = domain.NewError(domain.ErrValidation, "EmptyUpdate", "nothing to update")

	// ErrStorage возвращается при ошибках хранилища
	ErrStorage = fmt.Errorf("%w: bookings.service: storage failure", domain.ErrStorage)
)
