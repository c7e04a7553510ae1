package apply_previous_bookings

import (
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

var (
	// ErrSameDate возвращается, когда исходная и целевая даты совпадают
	ErrSameDate = domain.NewError(domain.ErrValidation, "SameSourceAndTarget", "source date must differ from target date")

	// ErrMissingActor возвращается, когда не указан автор операции
	ErrMissingActor = domain.NewError(domain.ErrValidation, "MissingActor", "actor identity is required")

	// ErrStorage возвращается, когда не удалось прочитать исходные бронирования
	ErrStorage = fmt.Errorf("%w: apply_previous_bookings: storage failure", domain.ErrStorage)
)
