package update_pc

import (
	"context"

	"github.com/m04kA/lab-booking-service/internal/service/pcs/models"
)

type PCService interface {
	Update(ctx context.Context, id int64, req *models.UpdatePCRequest) (*models.PCResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
