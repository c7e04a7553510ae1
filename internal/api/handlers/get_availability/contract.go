package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

type AvailabilityService interface {
	GetAvailability(ctx context.Context, date time.Time) (*domain.Grid, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
