package apply_previous_bookings

import (
	"context"

	"github.com/m04kA/lab-booking-service/internal/usecase/apply_previous_bookings"
)

type UseCase interface {
	Execute(ctx context.Context, req *apply_previous_bookings.Request) (*apply_previous_bookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
