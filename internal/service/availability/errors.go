package availability

import (
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

var (
	// ErrStorage возвращается, когда не удалось прочитать реестр или бронирования
	ErrStorage = fmt.Errorf("%w: availability: storage failure", domain.ErrStorage)

	// ErrObserverClosed возвращается при подписке после закрытия реестра наблюдателей
	ErrObserverClosed = domain.NewError(domain.ErrConflict, "ObserverClosed", "availability: observer registry is closed")
)
