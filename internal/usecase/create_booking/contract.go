package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error)
}

// PCRepository интерфейс репозитория ПК
type PCRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PC, error)
}

// IdempotencyCache кэш ключей идемпотентности
type IdempotencyCache interface {
	Get(key string) (int64, bool)
	Put(key string, bookingID int64)
}

// ChangePublisher получатель уведомлений об изменениях бронирований
type ChangePublisher interface {
	Publish(change domain.Change)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncBooking(result string)
	IncIdempotentReplay()
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
