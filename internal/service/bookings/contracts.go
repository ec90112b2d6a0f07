package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	"github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByManageToken(ctx context.Context, token uuid.UUID) (*domain.Booking, error)
	GetByProfileWithFilter(ctx context.Context, filter domain.ProfileBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
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
