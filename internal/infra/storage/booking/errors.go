package booking

import (
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или удалено
	ErrBookingNotFound = domain.NewError(domain.ErrNotFound, "BookingNotFound", "booking.repository: booking not found")

	// ErrSlotOccupied возвращается при нарушении ux_lab_bookings_active_cell
	ErrSlotOccupied = domain.NewError(domain.ErrConflict, "SlotOccupied", "booking.repository: slot already has a confirmed booking")

	// ErrDuplicateIdempotencyKey возвращается при нарушении ux_lab_bookings_idempotency_key
	ErrDuplicateIdempotencyKey = domain.NewError(domain.ErrConflict, "IdempotencyKeyReused", "booking.repository: idempotency key already used")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("%w: booking.repository: failed to build query", domain.ErrStorage)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: booking.repository: failed to execute query", domain.ErrStorage)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: booking.repository: failed to scan row", domain.ErrStorage)
)
