package pcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/lab-booking-service/internal/domain"
	pcRepo "github.com/m04kA/lab-booking-service/internal/infra/storage/pc"
	"github.com/m04kA/lab-booking-service/internal/service/pcs/models"
)

// Service сервис реестра ПК лаборатории
type Service struct {
	pcRepo PCRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса ПК
func NewService(pcRepo PCRepository, logger Logger) *Service {
	return &Service{
		pcRepo: pcRepo,
		logger: logger,
	}
}

// Create добавляет ПК в реестр
func (s *Service) Create(ctx context.Context, req *models.CreatePCRequest) (*models.PCResponse, error) {
	pc := &domain.PC{
		PCNumber:  domain.NormalizePCNumber(req.PCNumber),
		RowNumber: req.RowNumber,
		Status:    domain.PCStatusActive,
	}
	if req.Status != nil {
		pc.Status = domain.PCStatus(*req.Status)
	}

	if err := validatePC(pc); err != nil {
		s.logger.Warn("Create: invalid pc %q row=%d status=%s: %v", pc.PCNumber, pc.RowNumber, pc.Status, err)
		return nil, err
	}

	created, err := s.pcRepo.Create(ctx, pc)
	if err != nil {
		return nil, s.mapRepoError("Create", err)
	}

	s.logger.Info("Create: pc id=%d number=%s row=%d created", created.ID, created.PCNumber, created.RowNumber)
	return models.FromDomainPC(created), nil
}

// GetByID получает ПК по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PCResponse, error) {
	pc, err := s.pcRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", err)
	}
	return models.FromDomainPC(pc), nil
}

// List возвращает все ПК по ряду и номеру
func (s *Service) List(ctx context.Context) (*models.PCListResponse, error) {
	pcs, err := s.pcRepo.List(ctx)
	if err != nil {
		return nil, s.mapRepoError("List", err)
	}
	return models.FromDomainPCList(pcs), nil
}

// ListByRow возвращает ПК, сгруппированные по рядам
func (s *Service) ListByRow(ctx context.Context) (*models.PCRowsResponse, error) {
	pcs, err := s.pcRepo.List(ctx)
	if err != nil {
		return nil, s.mapRepoError("ListByRow", err)
	}
	return models.FromDomainRows(domain.GroupByRow(pcs)), nil
}

// Update меняет номер, ряд или статус ПК
// Бронирования не затрагиваются: ПК вне статуса active отображается как unavailable
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdatePCRequest) (*models.PCResponse, error) {
	pc, err := s.pcRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", err)
	}

	previousStatus := pc.Status
	if req.PCNumber != nil {
		pc.PCNumber = domain.NormalizePCNumber(*req.PCNumber)
	}
	if req.RowNumber != nil {
		pc.RowNumber = *req.RowNumber
	}
	if req.Status != nil {
		pc.Status = domain.PCStatus(*req.Status)
	}

	if err := validatePC(pc); err != nil {
		s.logger.Warn("Update: invalid pc id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.pcRepo.Update(ctx, pc)
	if err != nil {
		return nil, s.mapRepoError("Update", err)
	}

	if previousStatus == domain.PCStatusActive && updated.Status != domain.PCStatusActive {
		s.logger.Warn("Update: pc id=%d number=%s moved to %s, existing bookings are kept",
			updated.ID, updated.PCNumber, updated.Status)
	}

	s.logger.Info("Update: pc id=%d updated", updated.ID)
	return models.FromDomainPC(updated), nil
}

// Delete удаляет ПК. Бронирования остаются в истории
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.pcRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", err)
	}
	s.logger.Info("Delete: pc id=%d deleted", id)
	return nil
}

// ClearAll удаляет все ПК
func (s *Service) ClearAll(ctx context.Context) (*models.ClearAllResponse, error) {
	count, err := s.pcRepo.DeleteAll(ctx)
	if err != nil {
		return nil, s.mapRepoError("ClearAll", err)
	}
	s.logger.Warn("ClearAll: removed %d pcs from registry", count)
	return &models.ClearAllResponse{DeletedCount: count}, nil
}

func (s *Service) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, pcRepo.ErrPCNotFound):
		s.logger.Warn("%s: pc not found", op)
		return ErrPCNotFound
	case errors.Is(err, pcRepo.ErrPCNumberTaken):
		s.logger.Warn("%s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrPCNumberTaken, err)
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrStorage, op, err)
	}
}

func validatePC(pc *domain.PC) error {
	if err := domain.ValidatePCNumber(pc.PCNumber); err != nil {
		return err
	}
	if err := domain.ValidateRowNumber(pc.RowNumber); err != nil {
		return err
	}
	if !pc.Status.IsValid() {
		return domain.ErrInvalidPCStatus
	}
	return nil
}
