package list_pcs_by_row

import (
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
)

type Handler struct {
	service PCService
	logger  Logger
}

func NewHandler(service PCService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/lab/pcs/by-row
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListByRow(r.Context())
	if err != nil {
		h.logger.Error("GET /lab/pcs/by-row - Failed to list pcs: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
