package update_availability

import (
	"context"

	"github.com/m04kA/IB-AvailabilityService/internal/service/availability/models"
)

type AvailabilityService interface {
	Update(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
