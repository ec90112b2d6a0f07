package models

import (
	"errors"
	"time"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelByOwnerRequest запрос владельца профиля на отмену бронирования
type CancelByOwnerRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// CancelByTokenRequest запрос рекрутера на отмену по manage-токену
type CancelByTokenRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// GetProfileBookingsRequest запрос на получение бронирований профиля
type GetProfileBookingsRequest struct {
	UserID          int64      `json:"userId"`
	ProfileID       int64      `json:"profileId"`
	StartTime       *time.Time `json:"startTime,omitempty"`       // Начало периода (опционально)
	EndTime         *time.Time `json:"endTime,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProfileBookingsRequest) ToDomainFilter() (domain.ProfileBookingsFilter, error) {
	filter := domain.ProfileBookingsFilter{
		ProfileID:       r.ProfileID,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	ProfileID       int64  `json:"profileId"`
	RecruiterName   string `json:"recruiterName"`
	RecruiterEmail  string `json:"recruiterEmail"`
	StartTime       string `json:"startTime"` // ISO 8601
	EndTime         string `json:"endTime"`   // ISO 8601
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ProfileID:          b.ProfileID,
		RecruiterName:      b.RecruiterName,
		RecruiterEmail:     b.RecruiterEmail,
		StartTime:          b.StartTime.Format(time.RFC3339),
		EndTime:            b.EndTime.Format(time.RFC3339),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByOwner,
		domain.StatusCancelledByRecruiter,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
