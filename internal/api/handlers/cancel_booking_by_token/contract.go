package cancel_booking_by_token

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/IB-AvailabilityService/internal/service/bookings/models"
)

type BookingService interface {
	CancelByToken(ctx context.Context, token uuid.UUID, req *models.CancelByTokenRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
