package availability

import (
	"context"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	"github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
)

// AvailabilityRepository интерфейс репозитория записей доступности
type AvailabilityRepository interface {
	GetByProfileID(ctx context.Context, profileID int64) (*domain.AvailabilityRecord, error)
	Upsert(ctx context.Context, record *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error)
	DeleteByProfileID(ctx context.Context, profileID int64) error
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetProfile(ctx context.Context, profileID int64) (*profileservice.Profile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
