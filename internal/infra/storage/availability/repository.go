package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	"github.com/m04kA/IB-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/IB-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий записей доступности.
// Payload хранится как непрозрачный JSONB: его структуру знает только
// domain.NormalizeAvailability, применяемая при каждом чтении.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProfileID получает запись доступности профиля
func (r *Repository) GetByProfileID(ctx context.Context, profileID int64) (*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"profile_id",
		"owner_id",
		"payload",
		"created_at",
		"updated_at",
	).
		From("availability_records").
		Where(squirrel.Eq{"profile_id": profileID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfileID - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.AvailabilityRecord
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ProfileID,
		&record.OwnerID,
		&record.Payload,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfileID - execute select: %v", ErrExecQuery, err)
	}

	return &record, nil
}

// Upsert создает или заменяет запись доступности профиля целиком.
// Конкурентные изменения разрешаются как last-write-wins.
func (r *Repository) Upsert(ctx context.Context, record *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_records").
		Columns("profile_id", "owner_id", "payload").
		Values(record.ProfileID, record.OwnerID, record.Payload).
		Suffix(`ON CONFLICT (profile_id) DO UPDATE
			SET owner_id = EXCLUDED.owner_id,
			    payload = EXCLUDED.payload,
			    updated_at = now()
			RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return record, nil
}

// DeleteByProfileID удаляет запись доступности профиля
func (r *Repository) DeleteByProfileID(ctx context.Context, profileID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_records").
		Where(squirrel.Eq{"profile_id": profileID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByProfileID - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByProfileID - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByProfileID - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
