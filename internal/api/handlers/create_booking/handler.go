package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
	"github.com/m04kA/lab-booking-service/internal/service/bookings/models"
	createBooking "github.com/m04kA/lab-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"

	// IdempotencyKeyHeader заголовок с ключом идемпотентности
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader выставляется, когда возвращено ранее созданное бронирование
	ReplayedHeader = "Idempotent-Replayed"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/lab/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lab/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(req); err != nil {
		h.logger.Warn("POST /lab/bookings - Invalid request: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	var idempotencyKey *string
	if key := r.Header.Get(IdempotencyKeyHeader); key != "" {
		idempotencyKey = &key
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, idempotencyKey))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotOccupied):
			h.logger.Warn("POST /lab/bookings - Slot occupied: pc=%d, date=%s, slot=%s, actor=%s", req.PCID, req.Date, req.TimeSlot, actor)
		case errors.Is(err, createBooking.ErrIdempotencyKeyReused):
			h.logger.Warn("POST /lab/bookings - Idempotency key reused: actor=%s", actor)
		case errors.Is(err, createBooking.ErrPCNotFound), errors.Is(err, createBooking.ErrPCUnavailable):
			h.logger.Warn("POST /lab/bookings - PC rejected: pc=%d: %v", req.PCID, err)
		case handlers.StatusOf(err) < http.StatusInternalServerError:
			h.logger.Warn("POST /lab/bookings - Validation failed: %v", err)
		default:
			h.logger.Error("POST /lab/bookings - Failed to create booking: pc=%d, actor=%s, error=%v", req.PCID, actor, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	response := models.FromDomainBooking(result.Booking, result.PCNumber)

	if result.Replayed {
		h.logger.Info("POST /lab/bookings - Replayed booking: booking_id=%d, actor=%s", result.Booking.ID, actor)
		w.Header().Set(ReplayedHeader, "true")
		handlers.RespondJSON(w, http.StatusOK, response)
		return
	}

	h.logger.Info("POST /lab/bookings - Booking created successfully: booking_id=%d, pc=%d, actor=%s",
		result.Booking.ID, result.Booking.PCID, actor)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
