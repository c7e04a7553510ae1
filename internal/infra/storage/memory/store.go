package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// Store хранилище в памяти процесса для локального запуска и тестов
// Реализует те же методы и ошибки, что и репозитории PostgreSQL
type Store struct {
	mu sync.RWMutex

	pcs      map[int64]*domain.PC
	bookings map[int64]*domain.Booking

	nextPCID      int64
	nextBookingID int64

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		pcs:      make(map[int64]*domain.PC),
		bookings: make(map[int64]*domain.Booking),
		now:      time.Now,
	}
}

// WithClock подменяет источник времени для created_at/updated_at
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// PCs возвращает репозиторий ПК
func (s *Store) PCs() *PCRepository {
	return &PCRepository{store: s}
}

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// TxManager возвращает менеджер транзакций
func (s *Store) TxManager() *TxManager {
	return &TxManager{}
}

// TxManager выполняет функцию без транзакции
// Атомарность отдельных операций обеспечивает мьютекс Store
type TxManager struct{}

// Do выполняет fn
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoSerializable выполняет fn
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoReadOnly выполняет fn
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func copyPC(pc *domain.PC) *domain.PC {
	c := *pc
	return &c
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.Notes != nil {
		notes := *b.Notes
		c.Notes = &notes
	}
	if b.IdempotencyKey != nil {
		key := *b.IdempotencyKey
		c.IdempotencyKey = &key
	}
	if b.CompletedAt != nil {
		t := *b.CompletedAt
		c.CompletedAt = &t
	}
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		c.CancelledAt = &t
	}
	return &c
}
