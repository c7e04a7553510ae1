package update_pc

import (
	"errors"
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
	"github.com/m04kA/lab-booking-service/internal/domain"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle PUT /api/lab/pcs/{pcId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUserID(r.Context())

	pcID, err := handlers.PathID(r, "pcId")
	if err != nil {
		h.logger.Warn("PUT /lab/pcs/{id} - Invalid pc ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	var req UpdatePCRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /lab/pcs/%d - Invalid request body: %v", pcID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pc, err := h.service.Update(r.Context(), pcID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PUT /lab/pcs/%d - PC not found", pcID)
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PUT /lab/pcs/%d - Rejected: %v", pcID, err)
		default:
			h.logger.Error("PUT /lab/pcs/%d - Failed to update pc: %v", pcID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /lab/pcs/%d - PC updated: number=%s, status=%s, actor=%s", pcID, pc.PCNumber, pc.Status, actor)
	handlers.RespondJSON(w, http.StatusOK, pc)
}
