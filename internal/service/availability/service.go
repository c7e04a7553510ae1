package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// Service вычисляет занятость сетки ПК x слоты на дату и рассылает изменения подписчикам
type Service struct {
	pcRepo      PCRepository
	bookingRepo BookingRepository
	logger      Logger

	*Observers
}

// NewService создает сервис доступности
func NewService(pcRepo PCRepository, bookingRepo BookingRepository, metrics Metrics, logger Logger, bufferSize int) *Service {
	return &Service{
		pcRepo:      pcRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		Observers:   NewObservers(metrics, logger, bufferSize),
	}
}

// GetAvailability возвращает сетку занятости на дату
// Результат вычисляется заново на каждый вызов, без кэширования
func (s *Service) GetAvailability(ctx context.Context, date time.Time) (*domain.Grid, error) {
	date = domain.DateOf(date)

	pcs, err := s.pcRepo.List(ctx)
	if err != nil {
		s.logger.Error("GetAvailability: failed to list pcs: %v", err)
		return nil, fmt.Errorf("%w: GetAvailability - list pcs: %v", ErrStorage, err)
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		Date:     &date,
		Statuses: domain.VisibleStatuses,
	})
	if err != nil {
		s.logger.Error("GetAvailability: failed to list bookings for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetAvailability - list bookings: %v", ErrStorage, err)
	}

	return BuildGrid(date, pcs, bookings), nil
}

type cellKey struct {
	pcID int64
	slot domain.SlotID
}

// BuildGrid строит сетку по снимку реестра и бронирований на дату
//
// Правила:
//   - ячейка occupied, если есть подтвержденное бронирование
//   - ПК не в статусе active дает unavailable во всех слотах (бронирование сохраняется в ячейке)
//   - recently_freed, если подтвержденного бронирования нет, а последняя запись ячейки completed
//   - более поздняя отмененная запись перекрывает completed, ячейка снова available
//   - бронирования ПК, которых нет в реестре, игнорируются
func BuildGrid(date time.Time, pcs []*domain.PC, bookings []*domain.Booking) *domain.Grid {
	slots := domain.AllSlots()

	registered := make(map[int64]struct{}, len(pcs))
	for _, pc := range pcs {
		registered[pc.ID] = struct{}{}
	}

	confirmed := make(map[cellKey]*domain.Booking)
	latest := make(map[cellKey]*domain.Booking)
	for _, b := range bookings {
		if _, ok := registered[b.PCID]; !ok || !domain.SameDate(b.Date, date) {
			continue
		}
		key := cellKey{pcID: b.PCID, slot: b.TimeSlot}

		if b.Occupies() {
			confirmed[key] = b
		}
		if prev, ok := latest[key]; !ok || isNewer(b, prev) {
			latest[key] = b
		}
	}

	grid := &domain.Grid{
		Date:    date,
		Slots:   slots,
		PCs:     pcs,
		Cells:   make(map[int64]map[domain.SlotID]domain.Cell, len(pcs)),
		Summary: make([]domain.SlotSummary, 0, len(slots)),
	}

	for _, slot := range slots {
		summary := domain.SlotSummary{SlotID: slot.ID, TotalSpots: len(pcs)}

		for _, pc := range pcs {
			key := cellKey{pcID: pc.ID, slot: slot.ID}
			cell := domain.Cell{State: domain.CellAvailable}

			if b, ok := confirmed[key]; ok {
				cell = domain.Cell{State: domain.CellOccupied, Occupied: true, Booking: b}
			} else if last, ok := latest[key]; ok && last.Status == domain.StatusCompleted {
				cell.State = domain.CellRecentlyFreed
			}

			if !pc.IsBookable() {
				cell.State = domain.CellUnavailable
				cell.Occupied = true
			}

			if !cell.Occupied {
				summary.AvailableSpots++
			}

			if grid.Cells[pc.ID] == nil {
				grid.Cells[pc.ID] = make(map[domain.SlotID]domain.Cell, len(slots))
			}
			grid.Cells[pc.ID][slot.ID] = cell
		}

		grid.Summary = append(grid.Summary, summary)
	}

	return grid
}

// isNewer сравнивает записи ячейки по updated_at, затем по id
func isNewer(a, b *domain.Booking) bool {
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	return a.ID > b.ID
}
