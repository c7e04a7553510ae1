package pc

import (
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

var (
	// ErrPCNotFound возвращается, когда ПК не найден
	ErrPCNotFound = domain.NewError(domain.ErrNotFound, "PCNotFound", "pc.repository: pc not found")

	// ErrPCNumberTaken возвращается при нарушении уникальности номера ПК
	ErrPCNumberTaken = domain.NewError(domain.ErrConflict, "PCNumberTaken", "pc.repository: pc number already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("%w: pc.repository: failed to build query", domain.ErrStorage)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: pc.repository: failed to execute query", domain.ErrStorage)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: pc.repository: failed to scan row", domain.ErrStorage)
)
