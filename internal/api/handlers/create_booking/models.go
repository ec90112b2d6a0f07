package create_booking

import (
	"time"

	createBooking "github.com/m04kA/IB-AvailabilityService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProfileID       int64   `json:"profileId"`
	StartTime       string  `json:"startTime"` // ISO 8601, например "2026-09-01T10:00:00+03:00"
	DurationMinutes int     `json:"durationMinutes"`
	RecruiterName   string  `json:"recruiterName"`
	RecruiterEmail  string  `json:"recruiterEmail"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ProfileID       int64   `json:"profileId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ManageToken     string  `json:"manageToken"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим время начала слота
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ProfileID:       r.ProfileID,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		RecruiterName:   r.RecruiterName,
		RecruiterEmail:  r.RecruiterEmail,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ProfileID:       resp.ProfileID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		ManageToken:     resp.ManageToken.String(),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
