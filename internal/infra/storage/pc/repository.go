package pc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/pkg/dbmetrics"
	"github.com/m04kA/lab-booking-service/pkg/dbretry"
	"github.com/m04kA/lab-booking-service/pkg/pgerr"
	"github.com/m04kA/lab-booking-service/pkg/psqlbuilder"
)

const table = "lab_pcs"

var columns = []string{
	"id",
	"pc_number",
	"row_number",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с ПК лаборатории
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ПК
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает ПК. Нарушение уникальности номера возвращает ErrPCNumberTaken
func (r *Repository) Create(ctx context.Context, pc *domain.PC) (*domain.PC, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("pc_number", "row_number", "status").
		Values(pc.PCNumber, pc.RowNumber, pc.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&pc.ID, &pc.CreatedAt, &pc.UpdatedAt)
	if err != nil {
		if _, ok := pgerr.IsUniqueViolation(err); ok {
			return nil, fmt.Errorf("%w: %s", ErrPCNumberTaken, pc.PCNumber)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return pc, nil
}

// GetByID получает ПК по ID
// Внутри транзакции строка блокируется FOR SHARE, чтобы статус не изменился до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PC, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var pc domain.PC
	err = dbretry.Do(ctx, func(ctx context.Context) error {
		return scanPC(executor.QueryRowContext(ctx, query, args...), &pc)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPCNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan pc: %v", ErrScanRow, err)
	}

	return &pc, nil
}

// List возвращает все ПК, упорядоченные по ряду и числовому суффиксу номера
func (r *Repository) List(ctx context.Context) ([]*domain.PC, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("row_number ASC", "pc_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	var pcs []*domain.PC
	err = dbretry.Do(ctx, func(ctx context.Context) error {
		rows, err := executor.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		pcs = make([]*domain.PC, 0)
		for rows.Next() {
			var pc domain.PC
			if err := scanPC(rows, &pc); err != nil {
				return err
			}
			pcs = append(pcs, &pc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}

	domain.SortPCs(pcs)
	return pcs, nil
}

// Update обновляет номер, ряд и статус ПК
func (r *Repository) Update(ctx context.Context, pc *domain.PC) (*domain.PC, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("pc_number", pc.PCNumber).
		Set("row_number", pc.RowNumber).
		Set("status", pc.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": pc.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&pc.CreatedAt, &pc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPCNotFound
	}
	if err != nil {
		if _, ok := pgerr.IsUniqueViolation(err); ok {
			return nil, fmt.Errorf("%w: %s", ErrPCNumberTaken, pc.PCNumber)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return pc, nil
}

// Delete удаляет ПК. Бронирования сохраняют ссылку на удаленный ПК
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPCNotFound
	}

	return nil
}

// DeleteAll удаляет все ПК и возвращает их количество
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPC(row rowScanner, pc *domain.PC) error {
	return row.Scan(
		&pc.ID,
		&pc.PCNumber,
		&pc.RowNumber,
		&pc.Status,
		&pc.CreatedAt,
		&pc.UpdatedAt,
	)
}
