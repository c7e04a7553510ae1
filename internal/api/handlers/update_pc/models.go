package update_pc

import "github.com/m04kA/lab-booking-service/internal/service/pcs/models"

// UpdatePCRequest HTTP request model (все поля опциональны)
type UpdatePCRequest struct {
	PCNumber  *string `json:"pcNumber,omitempty"`
	RowNumber *int    `json:"rowNumber,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdatePCRequest) ToServiceRequest() *models.UpdatePCRequest {
	return &models.UpdatePCRequest{
		PCNumber:  r.PCNumber,
		RowNumber: r.RowNumber,
		Status:    r.Status,
	}
}
