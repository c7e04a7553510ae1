package models

import (
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// Request модели

// ListBookingsRequest фильтр списка бронирований (все поля опциональны)
type ListBookingsRequest struct {
	Date     *string
	PCID     *int64
	TimeSlot *string // id или подпись слота
	Status   *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter

	if r.Date != nil {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}
	if r.PCID != nil {
		filter.PCIDs = []int64{*r.PCID}
	}
	if r.TimeSlot != nil {
		slot, err := domain.ParseSlot(*r.TimeSlot)
		if err != nil {
			return filter, err
		}
		filter.TimeSlot = &slot.ID
	}
	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		if !status.IsValid() || status == domain.StatusDeleted {
			return filter, domain.ErrInvalidStatus
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	return filter, nil
}

// UpdateBookingRequest частичное обновление бронирования
// ПК, дата и слот не меняются
type UpdateBookingRequest struct {
	BookedFor   *string
	Student     *string
	Teacher     *string
	Batch       *string
	TeacherName *string
	Purpose     *string
	Notes       *string
	Priority    *string
	Status      *string
}

// IsEmpty возвращает true, если не задано ни одно поле
func (r *UpdateBookingRequest) IsEmpty() bool {
	return r.BookedFor == nil && r.Student == nil && r.Teacher == nil && r.Batch == nil &&
		r.TeacherName == nil && r.Purpose == nil && r.Notes == nil && r.Priority == nil && r.Status == nil
}

// ChangesBookedFor возвращает true, если запрос меняет получателя
func (r *UpdateBookingRequest) ChangesBookedFor() bool {
	return r.BookedFor != nil || r.Student != nil || r.Teacher != nil || r.Batch != nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	PCID          int64   `json:"pc"`
	PCNumber      string  `json:"pcNumber,omitempty"`
	Date          string  `json:"date"`     // "2024-06-01"
	TimeSlot      string  `json:"timeSlot"` // "09:00-10:30"
	TimeSlotLabel string  `json:"timeSlotLabel"`
	BookedFor     string  `json:"bookedFor"`
	BookedForKind string  `json:"bookedForKind"`
	Student       *string `json:"student,omitempty"`
	Teacher       *string `json:"teacher,omitempty"`
	Batch         *string `json:"batch,omitempty"`
	TeacherName   string  `json:"teacherName"`
	Purpose       string  `json:"purpose"`
	Notes         *string `json:"notes,omitempty"`
	Priority      string  `json:"priority"`
	Status        string  `json:"status"`
	IsActive      bool    `json:"isActive"`
	CreatedBy     string  `json:"createdBy"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Count    int               `json:"count"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, pcNumber string) *BookingResponse {
	if b == nil {
		return nil
	}

	label, _ := domain.LabelOf(b.TimeSlot)

	return &BookingResponse{
		ID:            b.ID,
		PCID:          b.PCID,
		PCNumber:      pcNumber,
		Date:          b.Date.Format(domain.DateFormat),
		TimeSlot:      string(b.TimeSlot),
		TimeSlotLabel: label,
		BookedFor:     b.BookedFor.Text,
		BookedForKind: string(b.BookedFor.Kind),
		Student:       b.BookedFor.RefOf(domain.BookedForStudent),
		Teacher:       b.BookedFor.RefOf(domain.BookedForTeacher),
		Batch:         b.BookedFor.RefOf(domain.BookedForBatch),
		TeacherName:   b.TeacherName,
		Purpose:       b.Purpose,
		Notes:         b.Notes,
		Priority:      string(b.Priority),
		Status:        string(b.Status),
		IsActive:      b.IsActive(),
		CreatedBy:     b.CreatedBy,
		CompletedAt:   b.CompletedAt,
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
// pcNumbers - номера ПК по ID; отсутствующие ПК остаются без номера
func FromDomainBookingList(bookings []*domain.Booking, pcNumbers map[int64]string) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, pcNumbers[booking.PCID]); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	resp.Count = len(resp.Bookings)

	return resp
}
