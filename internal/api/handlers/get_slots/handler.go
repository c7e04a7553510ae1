package get_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/pkg/types"
)

type Handler struct {
	location     *time.Location
	timeProvider TimeProvider
}

func NewHandler(location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		location:     location,
		timeProvider: RealTimeProvider{},
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (h *Handler) WithTimeProvider(tp TimeProvider) *Handler {
	h.timeProvider = tp
	return h
}

// Handle GET /api/lab/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	now := h.timeProvider.Now().In(h.location)
	clock := types.NewTimeString(now)

	resp := SlotsResponse{
		Timezone:  h.location.String(),
		Today:     now.Format(domain.DateFormat),
		Now:       clock.String(),
		TimeSlots: make([]SlotResponse, 0),
	}
	for _, s := range domain.AllSlots() {
		resp.TimeSlots = append(resp.TimeSlots, fromDomainSlot(s))
	}

	if current, ok := domain.SlotContaining(clock); ok {
		slot := fromDomainSlot(current)
		resp.CurrentSlot = &slot
	}
	if next, ok := domain.NextSlotAfter(clock); ok {
		slot := fromDomainSlot(next)
		resp.NextSlot = &slot
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
