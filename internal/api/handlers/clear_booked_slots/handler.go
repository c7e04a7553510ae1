package clear_booked_slots

import (
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
	"github.com/m04kA/lab-booking-service/internal/usecase/clear_booked_slots"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/lab/bookings/clear-bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req ClearRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /lab/bookings/clear-bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		h.logger.Warn("DELETE /lab/bookings/clear-bulk - Failed for date=%s, slot=%s: %v", req.Date, req.TimeSlot, err)
		handlers.RespondDomainError(w, err)
		return
	}

	if result.Errors == nil {
		result.Errors = []clear_booked_slots.ClearError{}
	}

	h.logger.Info("DELETE /lab/bookings/clear-bulk - Cleared %d of %d on %s (user_id=%s)",
		result.ClearedCount, result.MatchedCount, req.Date, actor)
	handlers.RespondJSON(w, http.StatusOK, result)
}
