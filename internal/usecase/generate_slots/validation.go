package generate_slots

import (
	"fmt"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProfileID <= 0 {
		return fmt.Errorf("%w: profileID must be positive", ErrInvalidInput)
	}

	if req.Days != nil && (*req.Days < 0 || *req.Days > domain.MaxWindowDays) {
		return fmt.Errorf("%w: days must be between 0 and %d", ErrInvalidInput, domain.MaxWindowDays)
	}

	if req.DurationMinutes != nil && (*req.DurationMinutes <= 0 || *req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	if req.From != nil && req.From.IsZero() {
		return fmt.Errorf("%w: from date must not be zero", ErrInvalidInput)
	}

	return nil
}

// durationAllowed проверяет, что запрошенная длительность входит в
// разрешённый список модели
func durationAllowed(duration int, allowed []int) bool {
	for _, d := range allowed {
		if d == duration {
			return true
		}
	}
	return false
}
