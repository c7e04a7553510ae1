package get_previous_bookings

import (
	"context"

	"github.com/m04kA/lab-booking-service/internal/usecase/apply_previous_bookings"
)

type UseCase interface {
	GetPrevious(ctx context.Context, targetDate string) (*apply_previous_bookings.PreviousResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
