package pcs

import (
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

var (
	// ErrPCNotFound возвращается, когда ПК не найден
	ErrPCNotFound = domain.NewError(domain.ErrNotFound, "PCNotFound", "pc not found")

	// ErrPCNumberTaken возвращается, когда номер ПК уже занят
	ErrPCNumberTaken = domain.NewError(domain.ErrConflict, "PCNumberTaken", "pc number already exists")

	// ErrStorage возвращается при ошибках хранилища
	ErrStorage = fmt.Errorf("%w: pcs.service: storage failure", domain.ErrStorage)
)
