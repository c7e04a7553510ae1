package clear_booked_slots

import (
	"context"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/service/bookings/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// BookingDeleter удаление бронирования через журнал
type BookingDeleter interface {
	Delete(ctx context.Context, id int64, actor string) (*models.BookingResponse, error)
}

// ChangePublisher получатель уведомлений об изменениях бронирований
type ChangePublisher interface {
	Publish(change domain.Change)
}

// Metrics бизнес-метрики
type Metrics interface {
	AddBulkRecords(operation, outcome string, count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
