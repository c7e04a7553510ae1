package clear_booked_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

const metricsOperation = "clear"

// UseCase массово удаляет подтвержденные бронирования даты
type UseCase struct {
	bookingRepo  BookingRepository
	deleter      BookingDeleter
	publisher    ChangePublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, deleter BookingDeleter, publisher ChangePublisher, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		deleter:      deleter,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute удаляет каждое подходящее бронирование через журнал
// Ошибка по одной записи попадает в Errors и не прерывает обработку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	filter, err := buildFilter(req)
	if err != nil {
		uc.logger.Warn("ClearBookedSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ClearBookedSlots: date=%s, slot=%s, pcs=%v, actor=%s",
		filter.Date.Format(domain.DateFormat), req.TimeSlot, req.PCIDs, req.Actor)

	matched, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("ClearBookedSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: list bookings: %v", ErrStorage, err)
	}

	result := &Response{
		MatchedCount: len(matched),
		Errors:       make([]ClearError, 0),
	}

	for _, b := range matched {
		if _, err := uc.deleter.Delete(ctx, b.ID, req.Actor); err != nil {
			uc.logger.Warn("ClearBookedSlots: failed to delete booking id=%d: %v", b.ID, err)
			result.Errors = append(result.Errors, ClearError{
				BookingID: b.ID,
				PCID:      b.PCID,
				TimeSlot:  b.TimeSlot,
				Reason:    domain.CodeOf(err),
				Message:   err.Error(),
			})
			continue
		}
		result.ClearedCount++
	}

	if result.ClearedCount > 0 {
		change := domain.Change{
			Kind:   domain.ChangeCleared,
			Date:   *filter.Date,
			Status: domain.StatusDeleted,
			At:     uc.timeProvider.Now(),
		}
		if filter.TimeSlot != nil {
			change.SlotID = *filter.TimeSlot
		}
		uc.publisher.Publish(change)
	}

	uc.metrics.AddBulkRecords(metricsOperation, "cleared", result.ClearedCount)
	uc.metrics.AddBulkRecords(metricsOperation, "failed", len(result.Errors))
	uc.logger.Info("ClearBookedSlots: cleared=%d of %d", result.ClearedCount, result.MatchedCount)

	return result, nil
}
