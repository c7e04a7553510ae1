package apply_previous_bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/usecase/create_booking"
)

const metricsOperation = "apply_previous"

// UseCase копирует подтвержденные бронирования одной даты на другую
type UseCase struct {
	bookingRepo BookingRepository
	pcRepo      PCRepository
	creator     BookingCreator
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, pcRepo PCRepository, creator BookingCreator, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		pcRepo:      pcRepo,
		creator:     creator,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetPrevious возвращает подтвержденные бронирования дня, предшествующего targetDate
func (uc *UseCase) GetPrevious(ctx context.Context, targetDate string) (*PreviousResponse, error) {
	target, err := domain.ParseDate(targetDate)
	if err != nil {
		return nil, err
	}
	source := previousDay(target)

	bookings, err := uc.sourceBookings(ctx, source)
	if err != nil {
		return nil, err
	}

	return &PreviousResponse{
		SourceDate: source,
		Bookings:   bookings,
		PCNumbers:  uc.pcNumbers(ctx),
	}, nil
}

// Execute копирует каждое подтвержденное бронирование исходной даты на целевую
// Ошибка по одной записи попадает в Conflicts и не прерывает обработку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	source, target, err := resolveDates(req)
	if err != nil {
		uc.logger.Warn("ApplyPreviousBookings: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ApplyPreviousBookings: source=%s, target=%s, actor=%s",
		source.Format(domain.DateFormat), target.Format(domain.DateFormat), req.Actor)

	bookings, err := uc.sourceBookings(ctx, source)
	if err != nil {
		return nil, err
	}

	pcNumbers := uc.pcNumbers(ctx)
	result := &Response{
		SourceDate: source,
		TargetDate: target,
		Conflicts:  make([]Conflict, 0),
		Applied:    make([]*domain.Booking, 0, len(bookings)),
		PCNumbers:  pcNumbers,
	}

	for _, b := range bookings {
		created, err := uc.creator.Execute(ctx, copyRequest(b, target, req.Actor))
		if err != nil {
			result.SkippedCount++
			result.Conflicts = append(result.Conflicts, Conflict{
				BookingID: b.ID,
				PCID:      b.PCID,
				PCNumber:  pcNumbers[b.PCID],
				TimeSlot:  b.TimeSlot,
				BookedFor: b.BookedFor.Text,
				Reason:    domain.CodeOf(err),
				Message:   err.Error(),
			})
			continue
		}

		result.AppliedCount++
		result.Applied = append(result.Applied, created.Booking)
		if created.PCNumber != "" {
			pcNumbers[created.Booking.PCID] = created.PCNumber
		}
	}

	uc.metrics.AddBulkRecords(metricsOperation, "applied", result.AppliedCount)
	uc.metrics.AddBulkRecords(metricsOperation, "skipped", result.SkippedCount)
	uc.logger.Info("ApplyPreviousBookings: applied=%d, skipped=%d of %d",
		result.AppliedCount, result.SkippedCount, len(bookings))

	return result, nil
}

func (uc *UseCase) sourceBookings(ctx context.Context, source time.Time) ([]*domain.Booking, error) {
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		Date:     &source,
		Statuses: []domain.BookingStatus{domain.StatusConfirmed},
	})
	if err != nil {
		uc.logger.Error("ApplyPreviousBookings: failed to list bookings for %s: %v", source.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: list source bookings: %v", ErrStorage, err)
	}
	return bookings, nil
}

// pcNumbers номера ПК для отчета; при ошибке отчет остается без номеров
func (uc *UseCase) pcNumbers(ctx context.Context) map[int64]string {
	numbers := make(map[int64]string)

	pcs, err := uc.pcRepo.List(ctx)
	if err != nil {
		uc.logger.Warn("ApplyPreviousBookings: failed to list pcs: %v", err)
		return numbers
	}
	for _, pc := range pcs {
		numbers[pc.ID] = pc.PCNumber
	}
	return numbers
}

func copyRequest(b *domain.Booking, target time.Time, actor string) *create_booking.Request {
	return &create_booking.Request{
		PCID:        b.PCID,
		Date:        target.Format(domain.DateFormat),
		TimeSlot:    string(b.TimeSlot),
		BookedFor:   b.BookedFor.Text,
		Student:     b.BookedFor.RefOf(domain.BookedForStudent),
		Teacher:     b.BookedFor.RefOf(domain.BookedForTeacher),
		Batch:       b.BookedFor.RefOf(domain.BookedForBatch),
		TeacherName: b.TeacherName,
		Purpose:     b.Purpose,
		Notes:       b.Notes,
		Priority:    string(b.Priority),
		CreatedBy:   actor,
	}
}
