package pcs

import (
	"context"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// PCRepository интерфейс репозитория ПК
type PCRepository interface {
	Create(ctx context.Context, pc *domain.PC) (*domain.PC, error)
	GetByID(ctx context.Context, id int64) (*domain.PC, error)
	List(ctx context.Context) ([]*domain.PC, error)
	Update(ctx context.Context, pc *domain.PC) (*domain.PC, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
