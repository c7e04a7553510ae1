package get_previous_bookings

import (
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/service/bookings/models"
)

// PreviousBookingsResponse HTTP response model
type PreviousBookingsResponse struct {
	SourceDate string                   `json:"sourceDate"`
	Bookings   []models.BookingResponse `json:"bookings"`
	Count      int                      `json:"count"`
}

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

// Handle GET /api/lab/bookings/previous?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, "date query parameter is required")
		return
	}

	result, err := h.useCase.GetPrevious(r.Context(), date)
	if err != nil {
		h.logger.Warn("GET /lab/bookings/previous - Failed for date=%s: %v", date, err)
		handlers.RespondDomainError(w, err)
		return
	}

	list := models.FromDomainBookingList(result.Bookings, result.PCNumbers)
	handlers.RespondJSON(w, http.StatusOK, PreviousBookingsResponse{
		SourceDate: result.SourceDate.Format(domain.DateFormat),
		Bookings:   list.Bookings,
		Count:      list.Count,
	})
}
