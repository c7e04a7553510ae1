package create_pc

import (
	"errors"
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/service/pcs"
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

// Handle POST /api/lab/pcs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUserID(r.Context())

	var req CreatePCRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lab/pcs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(req); err != nil {
		h.logger.Warn("POST /lab/pcs - Invalid request: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	pc, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, pcs.ErrPCNumberTaken):
			h.logger.Warn("POST /lab/pcs - PC number taken: %s", req.PCNumber)
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /lab/pcs - Validation failed: %v", err)
		default:
			h.logger.Error("POST /lab/pcs - Failed to create pc: %v", err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /lab/pcs - PC created: id=%d, number=%s, actor=%s", pc.ID, pc.PCNumber, actor)
	handlers.RespondJSON(w, http.StatusCreated, pc)
}
