package bookings

import (
	"context"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) (*domain.Booking, error)
	CompleteElapsed(ctx context.Context, today time.Time, endedSlots []domain.SlotID, at time.Time) ([]*domain.Booking, error)
}

// PCRepository интерфейс репозитория ПК (для номеров ПК в ответах)
type PCRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PC, error)
	List(ctx context.Context) ([]*domain.PC, error)
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
	AddCompleted(count int)
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
