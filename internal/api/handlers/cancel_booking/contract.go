package cancel_booking

import (
	"context"

	"github.com/m04kA/IB-AvailabilityService/internal/service/bookings/models"
)

type BookingService interface {
	CancelByOwner(ctx context.Context, bookingID int64, req *models.CancelByOwnerRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
