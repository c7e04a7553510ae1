package list_pcs

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

// Handle GET /api/lab/pcs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /lab/pcs - Failed to list pcs: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
