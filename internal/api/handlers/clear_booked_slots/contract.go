package clear_booked_slots

import (
	"context"

	"github.com/m04kA/lab-booking-service/internal/usecase/clear_booked_slots"
)

type UseCase interface {
	Execute(ctx context.Context, req *clear_booked_slots.Request) (*clear_booked_slots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
