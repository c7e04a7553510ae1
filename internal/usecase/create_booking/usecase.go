package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/lab-booking-service/internal/infra/storage/booking"
	pcRepo "github.com/m04kA/lab-booking-service/internal/infra/storage/pc"
)

// Результаты для метрики бронирований
const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	pcRepo       PCRepository
	keys         IdempotencyCache
	publisher    ChangePublisher
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	pcRepo PCRepository,
	keys IdempotencyCache,
	publisher ChangePublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		pcRepo:       pcRepo,
		keys:         keys,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Единственность подтвержденного бронирования ячейки обеспечивает хранилище,
// поэтому проверки "сначала прочитать, потом записать" здесь нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: pc=%d, date=%s, slot=%s, actor=%s", req.PCID, req.Date, req.TimeSlot, req.CreatedBy)

	// 1. Валидация входных данных
	draft, err := buildBooking(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBooking(resultRejected)
		return nil, err
	}

	// 2. Повторный запрос с тем же ключом возвращает первое бронирование
	if draft.IdempotencyKey != nil {
		replay, err := uc.replay(ctx, draft)
		if err != nil {
			return nil, err
		}
		if replay != nil {
			return replay, nil
		}
	}

	// 3. ПК читается FOR SHARE в той же транзакции, что и вставка
	var (
		result *domain.Booking
		pc     *domain.PC
	)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		found, err := uc.pcRepo.GetByID(txCtx, draft.PCID)
		if err != nil {
			if errors.Is(err, pcRepo.ErrPCNotFound) {
				return fmt.Errorf("%w: id=%d", ErrPCNotFound, draft.PCID)
			}
			return fmt.Errorf("%w: CreateBooking - get pc: %v", ErrStorage, err)
		}
		pc = found

		if !pc.IsBookable() {
			return fmt.Errorf("%w: %s is %s", ErrPCUnavailable, pc.PCNumber, pc.Status)
		}

		created, err := uc.bookingRepo.Create(txCtx, draft)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotOccupied):
				label, _ := domain.LabelOf(draft.TimeSlot)
				return fmt.Errorf("%w: %s on %s at %s", ErrSlotOccupied, pc.PCNumber, draft.Date.Format(domain.DateFormat), label)
			case errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey):
				return bookingRepo.ErrDuplicateIdempotencyKey
			default:
				return fmt.Errorf("%w: CreateBooking - create: %v", ErrStorage, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		// Параллельный запрос с тем же ключом успел вставить запись первым
		if errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey) {
			return uc.replayAfterRace(ctx, draft)
		}
		// Сбой begin/commit приходит без доменного вида
		if domain.KindOf(err) == "" {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			err = fmt.Errorf("%w: CreateBooking - transaction: %v", ErrStorage, err)
		}
		uc.observeFailure(err)
		return nil, err
	}

	if result.IdempotencyKey != nil {
		uc.keys.Put(*result.IdempotencyKey, result.ID)
	}

	uc.metrics.IncBooking(resultCreated)
	uc.publisher.Publish(domain.NewChange(domain.ChangeCreated, result, uc.timeProvider.Now()))
	uc.logger.Info("CreateBooking: successfully created booking id=%d (%s, %s, %s)",
		result.ID, pc.PCNumber, result.Date.Format(domain.DateFormat), result.TimeSlot)

	return &Response{Booking: result, PCNumber: pc.PCNumber}, nil
}

// replay ищет бронирование, созданное ранее с тем же ключом
// Возвращает nil, nil, если ключ еще не использовался
func (uc *UseCase) replay(ctx context.Context, draft *domain.Booking) (*Response, error) {
	key := *draft.IdempotencyKey

	var existing *domain.Booking
	if id, ok := uc.keys.Get(key); ok {
		b, err := uc.bookingRepo.GetByID(ctx, id)
		if err == nil {
			existing = b
		} else if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to get booking id=%d for key %s: %v", id, key, err)
			return nil, fmt.Errorf("%w: CreateBooking - replay: %v", ErrStorage, err)
		}
	}

	if existing == nil {
		b, err := uc.bookingRepo.GetByIdempotencyKey(ctx, key)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return nil, nil
			}
			uc.logger.Error("CreateBooking: failed to look up key %s: %v", key, err)
			return nil, fmt.Errorf("%w: CreateBooking - replay: %v", ErrStorage, err)
		}
		existing = b
		uc.keys.Put(key, b.ID)
	}

	return uc.replayed(ctx, draft, existing)
}

// replayAfterRace обрабатывает нарушение уникальности ключа при вставке
func (uc *UseCase) replayAfterRace(ctx context.Context, draft *domain.Booking) (*Response, error) {
	existing, err := uc.bookingRepo.GetByIdempotencyKey(ctx, *draft.IdempotencyKey)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Ключ принадлежит удаленному бронированию
			uc.logger.Warn("CreateBooking: idempotency key %s belongs to a deleted booking", *draft.IdempotencyKey)
			uc.metrics.IncBooking(resultConflict)
			return nil, ErrIdempotencyKeyReused
		}
		return nil, fmt.Errorf("%w: CreateBooking - replay: %v", ErrStorage, err)
	}

	uc.keys.Put(*draft.IdempotencyKey, existing.ID)
	return uc.replayed(ctx, draft, existing)
}

func (uc *UseCase) replayed(ctx context.Context, draft, existing *domain.Booking) (*Response, error) {
	if !existing.SameCell(draft.PCID, draft.Date, draft.TimeSlot) {
		uc.logger.Warn("CreateBooking: idempotency key %s reused for another cell (booking id=%d)", *draft.IdempotencyKey, existing.ID)
		uc.metrics.IncBooking(resultConflict)
		return nil, ErrIdempotencyKeyReused
	}

	uc.metrics.IncIdempotentReplay()
	uc.logger.Info("CreateBooking: replayed booking id=%d for key %s", existing.ID, *draft.IdempotencyKey)

	response := &Response{Booking: existing, Replayed: true}
	if pc, err := uc.pcRepo.GetByID(ctx, existing.PCID); err == nil {
		response.PCNumber = pc.PCNumber
	}
	return response, nil
}

func (uc *UseCase) observeFailure(err error) {
	switch {
	case errors.Is(err, domain.ErrConflict):
		uc.logger.Warn("CreateBooking: conflict: %v", err)
		uc.metrics.IncBooking(resultConflict)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("CreateBooking: rejected: %v", err)
		uc.metrics.IncBooking(resultRejected)
	default:
		uc.logger.Error("CreateBooking: failed: %v", err)
		uc.metrics.IncBooking(resultFailed)
	}
}
