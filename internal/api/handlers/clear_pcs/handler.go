package clear_pcs

import (
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
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

// Handle DELETE /api/lab/pcs/clear-all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUserID(r.Context())

	result, err := h.service.ClearAll(r.Context())
	if err != nil {
		h.logger.Error("DELETE /lab/pcs/clear-all - Failed to clear registry: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Warn("DELETE /lab/pcs/clear-all - Registry cleared by %s: %d pcs deleted", actor, result.DeletedCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
