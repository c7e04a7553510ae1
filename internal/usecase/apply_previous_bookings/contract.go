package apply_previous_bookings

import (
	"context"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/usecase/create_booking"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// PCRepository интерфейс репозитория ПК (номера ПК для отчета)
type PCRepository interface {
	List(ctx context.Context) ([]*domain.PC, error)
}

// BookingCreator создание одиночного бронирования; копии проходят те же проверки
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Metrics бизнес-метрики
type Metrics interface {
	AddBulkRecords(operation, outcome string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
