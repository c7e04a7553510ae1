package clear_pcs

import (
	"context"

	"github.com/m04kA/lab-booking-service/internal/service/pcs/models"
)

type PCService interface {
	ClearAll(ctx context.Context) (*models.ClearAllResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
