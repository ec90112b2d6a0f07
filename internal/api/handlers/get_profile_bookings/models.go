package get_profile_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	"github.com/m04kA/IB-AvailabilityService/internal/service/bookings/models"
	"github.com/m04kA/IB-AvailabilityService/pkg/ptr"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	profileID int64,
	userID int64,
	fromStr string,
	toStr string,
	statusStr string,
	includeInactiveStr string,
) (*models.GetProfileBookingsRequest, error) {
	req := &models.GetProfileBookingsRequest{
		UserID:          userID,
		ProfileID:       profileID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим from если указан
	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartTime = ptr.Ptr(from)
	}

	// Парсим to если указан: граница - конец дня, поэтому +1 день
	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndTime = ptr.Ptr(to.AddDate(0, 0, 1))
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
