package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/pkg/dbmetrics"
	"github.com/m04kA/lab-booking-service/pkg/dbretry"
	"github.com/m04kA/lab-booking-service/pkg/pgerr"
	"github.com/m04kA/lab-booking-service/pkg/psqlbuilder"
)

const (
	table = "lab_bookings"

	constraintActiveCell     = "ux_lab_bookings_active_cell"
	constraintIdempotencyKey = "ux_lab_bookings_idempotency_key"
)

var columns = []string{
	"id",
	"pc_id",
	"booking_date",
	"time_slot",
	"booked_for_kind",
	"booked_for_ref",
	"booked_for",
	"teacher_name",
	"purpose",
	"notes",
	"priority",
	"status",
	"created_by",
	"idempotency_key",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями лаборатории
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование
// Уникальность подтвержденного бронирования на ячейку обеспечивает частичный индекс
// ux_lab_bookings_active_cell: при конфликте возвращается ErrSlotOccupied.
// Повтор ключа идемпотентности возвращает ErrDuplicateIdempotencyKey
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"pc_id",
			"booking_date",
			"time_slot",
			"booked_for_kind",
			"booked_for_ref",
			"booked_for",
			"teacher_name",
			"purpose",
			"notes",
			"priority",
			"status",
			"created_by",
			"idempotency_key",
		).
		Values(
			booking.PCID,
			booking.Date,
			booking.TimeSlot,
			booking.BookedFor.Kind,
			nullString(booking.BookedFor.Ref),
			booking.BookedFor.Text,
			booking.TeacherName,
			booking.Purpose,
			booking.Notes,
			booking.Priority,
			booking.Status,
			booking.CreatedBy,
			booking.IdempotencyKey,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, r.translateWriteError("Create", booking, err)
	}

	return booking, nil
}

// GetByID получает видимое (не удаленное) бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByIdempotencyKey получает бронирование, созданное с указанным ключом
func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByIdempotencyKey", squirrel.Eq{"idempotency_key": key})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		Where(squirrel.NotEq{"status": domain.StatusDeleted})

	// В транзакции блокируем строку для последующего изменения статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var booking domain.Booking
	err = dbretry.Do(ctx, func(ctx context.Context) error {
		return scanBooking(executor.QueryRowContext(ctx, query, args...), &booking)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return &booking, nil
}

// List получает бронирования по фильтру, упорядоченные по created_at, id
// Удаленные бронирования не возвращаются никогда
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": statusStrings(filter.EffectiveStatuses())}).
		Where(squirrel.NotEq{"status": domain.StatusDeleted}).
		OrderBy("created_at ASC", "id ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if len(filter.PCIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"pc_id": filter.PCIDs})
	}
	if filter.TimeSlot != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"time_slot": *filter.TimeSlot})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	var bookings []*domain.Booking
	err = dbretry.Do(ctx, func(ctx context.Context) error {
		rows, err := executor.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		bookings, err = scanBookings(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}

	return bookings, nil
}

// Update сохраняет изменяемые поля бронирования: получателя, детали, приоритет и статус
// ПК, дата и слот не меняются
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("booked_for_kind", booking.BookedFor.Kind).
		Set("booked_for_ref", nullString(booking.BookedFor.Ref)).
		Set("booked_for", booking.BookedFor.Text).
		Set("teacher_name", booking.TeacherName).
		Set("purpose", booking.Purpose).
		Set("notes", booking.Notes).
		Set("priority", booking.Priority).
		Set("status", booking.Status).
		Set("completed_at", booking.CompletedAt).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Where(squirrel.NotEq{"status": domain.StatusDeleted}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, r.translateWriteError("Update", booking, err)
	}

	return booking, nil
}

// Delete переводит бронирование в статус deleted и возвращает его
// Слот освобождается сразу: частичный индекс учитывает только confirmed
func (r *Repository) Delete(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusDeleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusDeleted}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Delete - build update query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	err = scanBooking(executor.QueryRowContext(ctx, query, args...), &booking)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Delete - execute update: %v", ErrExecQuery, err)
	}

	return &booking, nil
}

// CompleteElapsed переводит в completed подтвержденные бронирования на даты до today,
// а также на today в уже закончившихся слотах
func (r *Repository) CompleteElapsed(ctx context.Context, today time.Time, endedSlots []domain.SlotID, at time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCompleted).
		Set("completed_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Or{
			squirrel.Lt{"booking_date": today},
			squirrel.And{
				squirrel.Eq{"booking_date": today},
				squirrel.Eq{"time_slot": slotStrings(endedSlots)},
			},
		}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteElapsed - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteElapsed - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteElapsed - scan: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// translateWriteError переводит нарушения уникальных индексов в доменные конфликты
func (r *Repository) translateWriteError(op string, booking *domain.Booking, err error) error {
	if constraint, ok := pgerr.IsUniqueViolation(err); ok {
		switch constraint {
		case constraintIdempotencyKey:
			return ErrDuplicateIdempotencyKey
		default:
			return fmt.Errorf("%w: pc=%d date=%s slot=%s",
				ErrSlotOccupied, booking.PCID, booking.Date.Format(domain.DateFormat), booking.TimeSlot)
		}
	}
	return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner, booking *domain.Booking) error {
	var ref sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.PCID,
		&booking.Date,
		&booking.TimeSlot,
		&booking.BookedFor.Kind,
		&ref,
		&booking.BookedFor.Text,
		&booking.TeacherName,
		&booking.Purpose,
		&booking.Notes,
		&booking.Priority,
		&booking.Status,
		&booking.CreatedBy,
		&booking.IdempotencyKey,
		&booking.CompletedAt,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return err
	}

	booking.BookedFor.Ref = ref.String
	booking.Date = domain.DateOf(booking.Date)
	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func slotStrings(slots []domain.SlotID) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = string(s)
	}
	return out
}
