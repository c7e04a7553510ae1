package update_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
	"github.com/m04kA/lab-booking-service/internal/domain"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle PUT /api/lab/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUserID(r.Context())

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /lab/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /lab/bookings/%d - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Update(r.Context(), bookingID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PUT /lab/bookings/%d - Booking not found", bookingID)
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PUT /lab/bookings/%d - Conflict: %v", bookingID, err)
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /lab/bookings/%d - Validation failed: %v", bookingID, err)
		default:
			h.logger.Error("PUT /lab/bookings/%d - Failed to update booking: %v", bookingID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /lab/bookings/%d - Booking updated: status=%s, actor=%s", bookingID, booking.Status, actor)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
