package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	"github.com/m04kA/IB-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/IB-AvailabilityService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"profile_id",
	"recruiter_name",
	"recruiter_email",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"manage_token",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её —
// создание всегда вызывается внутри сериализуемой транзакции вместе
// с проверкой доступности слота.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"profile_id",
			"recruiter_name",
			"recruiter_email",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"manage_token",
			"notes",
		).
		Values(
			booking.ProfileID,
			booking.RecruiterName,
			booking.RecruiterEmail,
			booking.StartTime,
			booking.EndTime,
			booking.DurationMinutes,
			booking.Status,
			booking.ManageToken,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, fmt.Errorf("%w: Create: %v", ErrDuplicateToken, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanOne(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByManageToken получает бронирование по manage-токену
func (r *Repository) GetByManageToken(ctx context.Context, token uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"manage_token": token}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByManageToken - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanOne(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByManageToken - scan row: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByProfileWithFilter получает бронирования профиля с фильтрацией
// по окну времени, статусу и активности
func (r *Repository) GetByProfileWithFilter(ctx context.Context, filter domain.ProfileBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"profile_id": filter.ProfileID}).
		OrderBy("start_time ASC")

	if filter.StartTime != nil {
		builder = builder.Where(squirrel.GtOrEq{"end_time": *filter.StartTime})
	}
	if filter.EndTime != nil {
		builder = builder.Where(squirrel.Lt{"start_time": *filter.EndTime})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if !filter.IncludeInactive {
		builder = builder.Where(squirrel.NotEq{"status": inactiveStatusStrings()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfileWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfileWithFilter - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByProfileWithFilter - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProfileWithFilter - rows: %v", ErrExecQuery, err)
	}

	return bookings, nil
}

// Cancel переводит бронирование в отменённый статус с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("now()")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanOne(row *sql.Row) (*domain.Booking, error) {
	return r.scan(row)
}

func (r *Repository) scanRow(rows *sql.Rows) (*domain.Booking, error) {
	return r.scan(rows)
}

func (r *Repository) scan(s rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledAt sql.NullTime

	err := s.Scan(
		&booking.ID,
		&booking.ProfileID,
		&booking.RecruiterName,
		&booking.RecruiterEmail,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.ManageToken,
		&booking.Notes,
		&booking.CancellationReason,
		&cancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}

	return &booking, nil
}

func inactiveStatusStrings() []string {
	out := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		out[i] = string(s)
	}
	return out
}
