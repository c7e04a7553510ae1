package apply_previous_bookings

import (
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
	"github.com/m04kA/lab-booking-service/internal/usecase/apply_previous_bookings"
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

// Handle POST /api/lab/bookings/apply-previous
// Частичный успех возвращается со статусом 200, пропуски перечислены в conflicts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req ApplyPreviousRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lab/bookings/apply-previous - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &apply_previous_bookings.Request{
		TargetDate: req.TargetDate,
		SourceDate: req.SourceDate,
		Actor:      actor,
	})
	if err != nil {
		h.logger.Warn("POST /lab/bookings/apply-previous - Failed for target=%s: %v", req.TargetDate, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /lab/bookings/apply-previous - Target %s: applied=%d, skipped=%d (user_id=%s)",
		req.TargetDate, result.AppliedCount, result.SkippedCount, actor)
	handlers.RespondJSON(w, http.StatusOK, toResponse(result))
}
