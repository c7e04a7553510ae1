package clear_booked_slots

import (
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

var (
	// ErrConfirmationRequired возвращается без явного confirmClear=true
	ErrConfirmationRequired = domain.NewError(domain.ErrValidation, "ConfirmationRequired", "confirmClear must be true")

	// ErrInvalidPCID возвращается при некорректном ID ПК в фильтре
	ErrInvalidPCID = domain.NewError(domain.ErrValidation, "InvalidPC", "pcIds must contain positive ids")

	// ErrMissingActor возвращается, когда не указан автор операции
	ErrMissingActor = domain.NewError(domain.ErrValidation, "MissingActor", "actor identity is required")

	// ErrStorage возвращается, когда не удалось выбрать бронирования для очистки
	ErrStorage = fmt.Errorf("%w: clear_booked_slots: storage failure", domain.ErrStorage)
)
