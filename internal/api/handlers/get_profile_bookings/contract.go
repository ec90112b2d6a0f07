package get_profile_bookings

import (
	"context"

	"github.com/m04kA/IB-AvailabilityService/internal/service/bookings/models"
)

type BookingService interface {
	GetProfileBookings(ctx context.Context, req *models.GetProfileBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
