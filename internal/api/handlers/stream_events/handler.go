package stream_events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/service/availability"
)

const defaultHeartbeat = 25 * time.Second

type Handler struct {
	subscriber Subscriber
	logger     Logger
	heartbeat  time.Duration
}

func NewHandler(subscriber Subscriber, logger Logger) *Handler {
	return &Handler{
		subscriber: subscriber,
		logger:     logger,
		heartbeat:  defaultHeartbeat,
	}
}

// Handle GET /api/lab/events?date=&pc=&timeSlot=
// Поток Server-Sent Events с изменениями журнала бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r)
	if err != nil {
		handlers.RespondDomainError(w, err)
		return
	}

	sub, err := h.subscriber.Subscribe(scope)
	if err != nil {
		h.logger.Warn("GET /lab/events - Subscribe failed: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, "ServiceUnavailable", domain.CodeOf(err), "event stream is closed")
		return
	}
	defer sub.Close()

	rc := http.NewResponseController(w)
	// Поток живет дольше WriteTimeout сервера
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.Error("GET /lab/events - Streaming unsupported: %v", err)
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		case change, ok := <-sub.C:
			if !ok {
				return
			}
			payload, err := json.Marshal(fromDomainChange(change))
			if err != nil {
				h.logger.Error("GET /lab/events - Failed to encode change: %v", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", change.Kind, payload); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func parseScope(r *http.Request) (availability.Scope, error) {
	var scope availability.Scope

	pcID, err := handlers.QueryID(r, "pc")
	if err != nil {
		return scope, err
	}
	scope.PCID = pcID

	if raw := handlers.QueryString(r, "date"); raw != nil {
		date, err := domain.ParseDate(*raw)
		if err != nil {
			return scope, err
		}
		scope.Date = &date
	}

	if raw := handlers.QueryString(r, "timeSlot"); raw != nil {
		slot, err := domain.ParseSlot(*raw)
		if err != nil {
			return scope, err
		}
		scope.SlotID = &slot.ID
	}

	return scope, nil
}
