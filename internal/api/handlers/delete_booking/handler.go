package delete_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
	"github.com/m04kA/lab-booking-service/internal/service/bookings"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/lab/bookings/{bookingId}
// Бронирование переводится в статус deleted, ячейка освобождается сразу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUserID(r.Context())

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /lab/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	booking, err := h.service.Delete(r.Context(), bookingID, actor)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("DELETE /lab/bookings/%d - Booking not found", bookingID)
		} else {
			h.logger.Error("DELETE /lab/bookings/%d - Failed to delete booking: %v", bookingID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /lab/bookings/%d - Booking deleted by %s", bookingID, actor)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
