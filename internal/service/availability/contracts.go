package availability

import (
	"context"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// PCRepository интерфейс репозитория ПК
type PCRepository interface {
	List(ctx context.Context) ([]*domain.PC, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Metrics метрики подписок на изменения
type Metrics interface {
	IncEventsDropped()
	SetEventSubscribers(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
