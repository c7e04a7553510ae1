package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/lab-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/lab-booking-service/internal/service/bookings/models"
	"github.com/m04kA/lab-booking-service/pkg/types"
)

// Service сервис для работы с бронированиями лаборатории
type Service struct {
	bookingRepo  BookingRepository
	pcRepo       PCRepository
	publisher    ChangePublisher
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	pcRepo PCRepository,
	publisher ChangePublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		pcRepo:       pcRepo,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return models.FromDomainBooking(booking, s.pcNumber(ctx, booking.PCID)), nil
}

// List получает бронирования по фильтру (дата, ПК, слот, статус)
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStorage, err)
	}

	return models.FromDomainBookingList(bookings, s.pcNumbers(ctx)), nil
}

// Update меняет получателя, детали, приоритет или статус бронирования
// Переходы статуса проверяются по domain.CanTransition
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	if req.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	var (
		updated        *domain.Booking
		previousStatus domain.BookingStatus
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		previousStatus = booking.Status

		if err := s.applyPatch(booking, req); err != nil {
			return err
		}

		updated, err = s.bookingRepo.Update(ctx, booking)
		return err
	})
	if err != nil {
		if isDomainError(err) {
			s.logger.Warn("Update: booking id=%d rejected: %v", id, err)
			return nil, err
		}
		return nil, s.mapRepoError("Update", id, err)
	}

	kind := domain.ChangeUpdated
	if updated.Status == domain.StatusCompleted && previousStatus != domain.StatusCompleted {
		kind = domain.ChangeCompleted
	}
	s.publisher.Publish(domain.NewChange(kind, updated, s.timeProvider.Now()))

	s.logger.Info("Update: booking id=%d updated, status %s -> %s", id, previousStatus, updated.Status)
	return models.FromDomainBooking(updated, s.pcNumber(ctx, updated.PCID)), nil
}

// Delete переводит бронирование в deleted, ячейка освобождается сразу
func (s *Service) Delete(ctx context.Context, id int64, actor string) (*models.BookingResponse, error) {
	deleted, err := s.bookingRepo.Delete(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Delete", id, err)
	}

	s.publisher.Publish(domain.NewChange(domain.ChangeDeleted, deleted, s.timeProvider.Now()))

	s.logger.Info("Delete: booking id=%d pc=%d date=%s slot=%s deleted by %s",
		deleted.ID, deleted.PCID, deleted.Date.Format(domain.DateFormat), deleted.TimeSlot, actor)
	return models.FromDomainBooking(deleted, ""), nil
}

// CompleteElapsed переводит подтвержденные бронирования закончившихся слотов в completed
// now задается в часовом поясе лаборатории
func (s *Service) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	today := domain.DateOf(now)
	ended := domain.EndedSlots(types.NewTimeString(now))

	completed, err := s.bookingRepo.CompleteElapsed(ctx, today, ended, now)
	if err != nil {
		s.logger.Error("CompleteElapsed: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompleteElapsed - repository error: %v", ErrStorage, err)
	}

	for _, b := range completed {
		s.publisher.Publish(domain.NewChange(domain.ChangeCompleted, b, now))
	}
	s.metrics.AddCompleted(len(completed))

	if len(completed) > 0 {
		s.logger.Info("CompleteElapsed: %d bookings completed", len(completed))
	}
	return len(completed), nil
}

func (s *Service) applyPatch(booking *domain.Booking, req *models.UpdateBookingRequest) error {
	if req.ChangesBookedFor() {
		bookedFor, err := patchBookedFor(booking.BookedFor, req)
		if err != nil {
			return err
		}
		booking.BookedFor = bookedFor
	}
	if req.TeacherName != nil {
		booking.TeacherName = strings.TrimSpace(*req.TeacherName)
	}
	if req.Purpose != nil {
		booking.Purpose = strings.TrimSpace(*req.Purpose)
	}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		booking.Notes = &notes
		if notes == "" {
			booking.Notes = nil
		}
	}
	if req.Priority != nil {
		priority, err := domain.ParsePriority(*req.Priority)
		if err != nil {
			return err
		}
		booking.Priority = priority
	}
	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		// удаление только через Delete
		if status == domain.StatusDeleted {
			return domain.ErrInvalidTransition
		}
		if err := booking.ApplyStatus(status, s.timeProvider.Now()); err != nil {
			return err
		}
	}

	return booking.ValidateDetails()
}

// patchBookedFor собирает нового получателя: ссылки из запроса заменяют вариант целиком,
// один только текст меняет отображаемое имя текущего варианта
func patchBookedFor(current domain.BookedFor, req *models.UpdateBookingRequest) (domain.BookedFor, error) {
	if req.Student != nil || req.Teacher != nil || req.Batch != nil {
		text := ""
		if req.BookedFor != nil {
			text = *req.BookedFor
		}
		return domain.NewBookedFor(req.Student, req.Teacher, req.Batch, text)
	}

	text := strings.TrimSpace(*req.BookedFor)
	if current.Kind != domain.BookedForFreeText && text == "" {
		text = current.Ref
	}
	next := domain.BookedFor{Kind: current.Kind, Ref: current.Ref, Text: text}
	if err := next.Validate(); err != nil {
		return domain.BookedFor{}, err
	}
	return next, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrSlotOccupied):
		s.logger.Warn("%s: booking id=%d conflicts with a confirmed booking", op, id)
		return fmt.Errorf("%w: %v", ErrSlotOccupied, err)
	default:
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrStorage, op, err)
	}
}

func (s *Service) pcNumber(ctx context.Context, pcID int64) string {
	pc, err := s.pcRepo.GetByID(ctx, pcID)
	if err != nil {
		return ""
	}
	return pc.PCNumber
}

func (s *Service) pcNumbers(ctx context.Context) map[int64]string {
	pcs, err := s.pcRepo.List(ctx)
	if err != nil {
		s.logger.Warn("pcNumbers: failed to load pc registry: %v", err)
		return nil
	}
	numbers := make(map[int64]string, len(pcs))
	for _, pc := range pcs {
		numbers[pc.ID] = pc.PCNumber
	}
	return numbers
}

// isDomainError возвращает true для ошибок валидации и переходов, которые отдаются как есть
func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrInvalidTransition)
}
