package list_pcs_by_row

import (
	"context"

	"github.com/m04kA/lab-booking-service/internal/service/pcs/models"
)

type PCService interface {
	ListByRow(ctx context.Context) (*models.PCRowsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
