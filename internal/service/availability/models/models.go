package models

import (
	"encoding/json"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
)

// Request модели

// UpdateAvailabilityRequest запрос на полную замену модели доступности.
// Payload принимается как есть: нормализация приводит любой валидный JSON
// к канонической форме, отбрасывая мусорные поля и некорректные блоки
type UpdateAvailabilityRequest struct {
	UserID    int64           `json:"userId"`
	ProfileID int64           `json:"profileId"`
	Payload   json.RawMessage `json:"payload"`
}

// Response модели

// AvailabilityResponse канонический вид модели доступности профиля
type AvailabilityResponse struct {
	ProfileID  int64                  `json:"profileId"`
	Timezone   string                 `json:"timezone"`
	Weekly     domain.WeeklySchedule  `json:"weekly"`
	Rules      domain.BookingRules    `json:"rules"`
	Exceptions []domain.DateException `json:"exceptions,omitempty"`
}

// FromDomainModel конвертирует domain модель в DTO
func FromDomainModel(profileID int64, m domain.AvailabilityModel) *AvailabilityResponse {
	return &AvailabilityResponse{
		ProfileID:  profileID,
		Timezone:   m.Timezone,
		Weekly:     m.Weekly,
		Rules:      m.Rules,
		Exceptions: m.Exceptions,
	}
}
