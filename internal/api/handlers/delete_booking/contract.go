package delete_booking

import (
	"context"

	"github.com/m04kA/lab-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	Delete(ctx context.Context, id int64, actor string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
