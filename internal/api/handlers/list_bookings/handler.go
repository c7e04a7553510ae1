package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/service/bookings/models"
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

// Handle GET /api/lab/bookings?date=&pc=&timeSlot=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pcID, err := handlers.QueryID(r, "pc")
	if err != nil {
		h.logger.Warn("GET /lab/bookings - Invalid pc filter: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	req := &models.ListBookingsRequest{
		Date:     handlers.QueryString(r, "date"),
		PCID:     pcID,
		TimeSlot: handlers.QueryString(r, "timeSlot"),
		Status:   handlers.QueryString(r, "status"),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("GET /lab/bookings - Invalid filter: %v", err)
		} else {
			h.logger.Error("GET /lab/bookings - Failed to list bookings: %v", err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
