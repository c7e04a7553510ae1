package clear_booked_slots

import (
	"github.com/m04kA/lab-booking-service/internal/usecase/clear_booked_slots"
)

// ClearRequest HTTP request model
type ClearRequest struct {
	Date         string  `json:"date" validate:"required"`
	TimeSlot     string  `json:"timeSlot" validate:"required"` // "09:00-10:30" или "all"
	PCIDs        []int64 `json:"pcIds"`
	ConfirmClear bool    `json:"confirmClear"`
}

// ToUseCaseRequest конвертирует HTTP модель в модель use case
func (r *ClearRequest) ToUseCaseRequest(actor string) *clear_booked_slots.Request {
	return &clear_booked_slots.Request{
		Date:         r.Date,
		TimeSlot:     r.TimeSlot,
		PCIDs:        r.PCIDs,
		ConfirmClear: r.ConfirmClear,
		Actor:        actor,
	}
}
