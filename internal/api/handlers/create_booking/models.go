package create_booking

import (
	createBooking "github.com/m04kA/lab-booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PCID        int64   `json:"pc" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required"`     // "2024-06-01"
	TimeSlot    string  `json:"timeSlot" validate:"required"` // "09:00-10:30" или "09:00 AM - 10:30 AM"
	BookedFor   string  `json:"bookedFor"`
	Purpose     string  `json:"purpose"`
	Batch       *string `json:"batch,omitempty"`
	Student     *string `json:"student,omitempty"`
	Teacher     *string `json:"teacher,omitempty"`
	TeacherName string  `json:"teacherName"`
	Notes       *string `json:"notes,omitempty"`
	Priority    string  `json:"priority"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor string, idempotencyKey *string) *createBooking.Request {
	return &createBooking.Request{
		PCID:           r.PCID,
		Date:           r.Date,
		TimeSlot:       r.TimeSlot,
		BookedFor:      r.BookedFor,
		Student:        r.Student,
		Teacher:        r.Teacher,
		Batch:          r.Batch,
		TeacherName:    r.TeacherName,
		Purpose:        r.Purpose,
		Notes:          r.Notes,
		Priority:       r.Priority,
		CreatedBy:      actor,
		IdempotencyKey: idempotencyKey,
	}
}
