package update_booking

import "github.com/m04kA/lab-booking-service/internal/service/bookings/models"

// UpdateBookingRequest HTTP request model (все поля опциональны)
type UpdateBookingRequest struct {
	BookedFor   *string `json:"bookedFor,omitempty"`
	Student     *string `json:"student,omitempty"`
	Teacher     *string `json:"teacher,omitempty"`
	Batch       *string `json:"batch,omitempty"`
	TeacherName *string `json:"teacherName,omitempty"`
	Purpose     *string `json:"purpose,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest() *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
		BookedFor:   r.BookedFor,
		Student:     r.Student,
		Teacher:     r.Teacher,
		Batch:       r.Batch,
		TeacherName: r.TeacherName,
		Purpose:     r.Purpose,
		Notes:       r.Notes,
		Priority:    r.Priority,
		Status:      r.Status,
	}
}
