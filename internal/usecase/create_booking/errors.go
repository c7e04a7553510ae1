package create_booking

import (
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

var (
	// ErrPCNotFound возвращается, когда ПК нет в реестре
	ErrPCNotFound = domain.NewError(domain.ErrNotFound, "PCNotFound", "pc not found")

	// ErrPCUnavailable возвращается, когда ПК не в статусе active
	ErrPCUnavailable = domain.NewError(domain.ErrValidation, "PCUnavailable", "pc is not available for booking")

	// ErrSlotOccupied возвращается, когда ячейка уже занята подтвержденным бронированием
	ErrSlotOccupied = domain.NewError(domain.ErrConflict, "SlotOccupied", "slot is already booked")

	// ErrIdempotencyKeyReused возвращается, когда ключ идемпотентности использован для другой ячейки
	ErrIdempotencyKeyReused = domain.NewError(domain.ErrConflict, "IdempotencyKeyReused", "idempotency key was used for a different booking")

	// ErrInvalidPCID возвращается при некорректном ID ПК
	ErrInvalidPCID = domain.NewError(domain.ErrValidation, "InvalidPC", "pc must be a positive id")

	// ErrMissingActor возвращается, когда не указан автор бронирования
	ErrMissingActor = domain.NewError(domain.ErrValidation, "MissingActor", "actor identity is required")

	// ErrStorage возвращается при ошибках хранилища
	ErrStorage = fmt.Errorf("%w: create_booking: storage failure", domain.ErrStorage)
)
