package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
	bookingstorage "github.com/m04kA/lab-booking-service/internal/infra/storage/booking"
)

// BookingRepository репозиторий бронирований в памяти
type BookingRepository struct {
	store *Store
}

// Create создает бронирование
// Проверка ячейки и вставка выполняются под одной блокировкой
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if booking.IdempotencyKey != nil {
		for _, existing := range s.bookings {
			if existing.IdempotencyKey != nil && *existing.IdempotencyKey == *booking.IdempotencyKey {
				return nil, bookingstorage.ErrDuplicateIdempotencyKey
			}
		}
	}
	if booking.Status == domain.StatusConfirmed && s.cellTakenLocked(booking, 0) {
		return nil, slotOccupied(booking)
	}

	s.nextBookingID++
	now := s.now()
	created := copyBooking(booking)
	created.ID = s.nextBookingID
	created.Date = domain.DateOf(booking.Date)
	created.CreatedAt = now
	created.UpdatedAt = now
	s.bookings[created.ID] = created

	booking.ID = created.ID
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return copyBooking(created), nil
}

// GetByID получает видимое бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok || b.Status == domain.StatusDeleted {
		return nil, bookingstorage.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

// GetByIdempotencyKey получает бронирование по ключу идемпотентности
func (r *BookingRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.IdempotencyKey != nil && *b.IdempotencyKey == key && b.Status != domain.StatusDeleted {
			return copyBooking(b), nil
		}
	}
	return nil, bookingstorage.ErrBookingNotFound
}

// List получает бронирования по фильтру, упорядоченные по created_at, id
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.Status == domain.StatusDeleted || !filter.Matches(b) {
			continue
		}
		bookings = append(bookings, copyBooking(b))
	}
	sortByCreation(bookings)
	return bookings, nil
}

// Update сохраняет изменяемые поля бронирования
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.bookings[booking.ID]
	if !ok || existing.Status == domain.StatusDeleted {
		return nil, bookingstorage.ErrBookingNotFound
	}
	if booking.Status == domain.StatusConfirmed && s.cellTakenLocked(existing, existing.ID) {
		return nil, slotOccupied(existing)
	}

	updated := copyBooking(existing)
	updated.BookedFor = booking.BookedFor
	updated.TeacherName = booking.TeacherName
	updated.Purpose = booking.Purpose
	updated.Notes = booking.Notes
	updated.Priority = booking.Priority
	updated.Status = booking.Status
	updated.CompletedAt = booking.CompletedAt
	updated.CancelledAt = booking.CancelledAt
	updated.UpdatedAt = s.now()
	s.bookings[updated.ID] = copyBooking(updated)

	return updated, nil
}

// Delete переводит бронирование в статус deleted
func (r *BookingRepository) Delete(ctx context.Context, id int64) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.Status == domain.StatusDeleted {
		return nil, bookingstorage.ErrBookingNotFound
	}
	b.Status = domain.StatusDeleted
	b.UpdatedAt = s.now()
	return copyBooking(b), nil
}

// CompleteElapsed переводит в completed подтвержденные бронирования закончившихся слотов
func (r *BookingRepository) CompleteElapsed(ctx context.Context, today time.Time, endedSlots []domain.SlotID, at time.Time) ([]*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	ended := make(map[domain.SlotID]struct{}, len(endedSlots))
	for _, id := range endedSlots {
		ended[id] = struct{}{}
	}

	completed := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.Status != domain.StatusConfirmed {
			continue
		}
		_, slotEnded := ended[b.TimeSlot]
		if !b.Date.Before(today) && !(domain.SameDate(b.Date, today) && slotEnded) {
			continue
		}

		completedAt := at
		b.Status = domain.StatusCompleted
		b.CompletedAt = &completedAt
		b.UpdatedAt = s.now()
		completed = append(completed, copyBooking(b))
	}
	sortByCreation(completed)
	return completed, nil
}

// cellTakenLocked проверяет наличие другого подтвержденного бронирования в ячейке
func (s *Store) cellTakenLocked(b *domain.Booking, exceptID int64) bool {
	for id, existing := range s.bookings {
		if id == exceptID || existing.Status != domain.StatusConfirmed {
			continue
		}
		if existing.SameCell(b.PCID, b.Date, b.TimeSlot) {
			return true
		}
	}
	return false
}

func slotOccupied(b *domain.Booking) error {
	return fmt.Errorf("%w: pc=%d date=%s slot=%s",
		bookingstorage.ErrSlotOccupied, b.PCID, b.Date.Format(domain.DateFormat), b.TimeSlot)
}

func sortByCreation(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
		}
		return bookings[i].ID < bookings[j].ID
	})
}
