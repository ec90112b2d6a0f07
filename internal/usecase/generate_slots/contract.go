package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	"github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
)

// AvailabilityRepository интерфейс репозитория записей доступности
type AvailabilityRepository interface {
	// GetByProfileID возвращает сохранённую запись доступности профиля
	GetByProfileID(ctx context.Context, profileID int64) (*domain.AvailabilityRecord, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByProfileWithFilter возвращает бронирования профиля в окне фильтра
	GetByProfileWithFilter(ctx context.Context, filter domain.ProfileBookingsFilter) ([]*domain.Booking, error)
}

// ProfileServiceClient интерфейс клиента ProfileService
type ProfileServiceClient interface {
	GetProfile(ctx context.Context, profileID int64) (*profileservice.Profile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
