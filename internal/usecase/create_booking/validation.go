package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProfileID <= 0 {
		return fmt.Errorf("%w: profileID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	name := strings.TrimSpace(req.RecruiterName)
	if name == "" {
		return fmt.Errorf("%w: recruiterName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxRecruiterName {
		return fmt.Errorf("%w: recruiterName is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.RecruiterEmail)
	if email == "" {
		return fmt.Errorf("%w: recruiterEmail is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: recruiterEmail is malformed", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxReasonLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}
