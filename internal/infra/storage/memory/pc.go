package memory

import (
	"context"
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
	pcstorage "github.com/m04kA/lab-booking-service/internal/infra/storage/pc"
)

// PCRepository репозиторий ПК в памяти
type PCRepository struct {
	store *Store
}

// Create создает ПК
func (r *PCRepository) Create(ctx context.Context, pc *domain.PC) (*domain.PC, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.pcs {
		if existing.PCNumber == pc.PCNumber {
			return nil, fmt.Errorf("%w: %s", pcstorage.ErrPCNumberTaken, pc.PCNumber)
		}
	}

	s.nextPCID++
	now := s.now()
	created := copyPC(pc)
	created.ID = s.nextPCID
	created.CreatedAt = now
	created.UpdatedAt = now
	s.pcs[created.ID] = created

	return copyPC(created), nil
}

// GetByID получает ПК по ID
func (r *PCRepository) GetByID(ctx context.Context, id int64) (*domain.PC, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	pc, ok := s.pcs[id]
	if !ok {
		return nil, pcstorage.ErrPCNotFound
	}
	return copyPC(pc), nil
}

// List возвращает все ПК по ряду и числовому суффиксу
func (r *PCRepository) List(ctx context.Context) ([]*domain.PC, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	pcs := make([]*domain.PC, 0, len(s.pcs))
	for _, pc := range s.pcs {
		pcs = append(pcs, copyPC(pc))
	}
	domain.SortPCs(pcs)
	return pcs, nil
}

// Update обновляет ПК
func (r *PCRepository) Update(ctx context.Context, pc *domain.PC) (*domain.PC, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.pcs[pc.ID]
	if !ok {
		return nil, pcstorage.ErrPCNotFound
	}
	for id, other := range s.pcs {
		if id != pc.ID && other.PCNumber == pc.PCNumber {
			return nil, fmt.Errorf("%w: %s", pcstorage.ErrPCNumberTaken, pc.PCNumber)
		}
	}

	updated := copyPC(pc)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()
	s.pcs[pc.ID] = updated

	return copyPC(updated), nil
}

// Delete удаляет ПК
func (r *PCRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pcs[id]; !ok {
		return pcstorage.ErrPCNotFound
	}
	delete(s.pcs, id)
	return nil
}

// DeleteAll удаляет все ПК
func (r *PCRepository) DeleteAll(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	count := int64(len(s.pcs))
	s.pcs = make(map[int64]*domain.PC)
	return count, nil
}
