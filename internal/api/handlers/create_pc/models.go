package create_pc

import "github.com/m04kA/lab-booking-service/internal/service/pcs/models"

// CreatePCRequest HTTP request model
type CreatePCRequest struct {
	PCNumber  string  `json:"pcNumber" validate:"required"`
	RowNumber int     `json:"rowNumber" validate:"required"`
	Status    *string `json:"status,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreatePCRequest) ToServiceRequest() *models.CreatePCRequest {
	return &models.CreatePCRequest{
		PCNumber:  r.PCNumber,
		RowNumber: r.RowNumber,
		Status:    r.Status,
	}
}
