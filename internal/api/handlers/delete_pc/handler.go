package delete_pc

import (
	"errors"
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
	"github.com/m04kA/lab-booking-service/internal/service/pcs"
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

// DeletePCResponse HTTP response model
type DeletePCResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// Handle DELETE /api/lab/pcs/{pcId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUserID(r.Context())

	pcID, err := handlers.PathID(r, "pcId")
	if err != nil {
		h.logger.Warn("DELETE /lab/pcs/{id} - Invalid pc ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), pcID); err != nil {
		if errors.Is(err, pcs.ErrPCNotFound) {
			h.logger.Warn("DELETE /lab/pcs/%d - PC not found", pcID)
		} else {
			h.logger.Error("DELETE /lab/pcs/%d - Failed to delete pc: %v", pcID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /lab/pcs/%d - PC deleted by %s", pcID, actor)
	handlers.RespondJSON(w, http.StatusOK, DeletePCResponse{ID: pcID, Deleted: true})
}
