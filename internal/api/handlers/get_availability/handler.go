package get_availability

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/domain"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/lab/availability/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := mux.Vars(r)["date"]

	date, err := domain.ParseDate(rawDate)
	if err != nil {
		h.logger.Warn("GET /lab/availability/%s - Invalid date", rawDate)
		handlers.RespondDomainError(w, err)
		return
	}

	grid, err := h.service.GetAvailability(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /lab/availability/%s - Failed to compute availability: %v", rawDate, err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainGrid(grid))
}
