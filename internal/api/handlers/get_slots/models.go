package get_slots

import (
	"time"

	generateSlots "github.com/m04kA/IB-AvailabilityService/internal/usecase/generate_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	ProfileID int64      `json:"profileId"`
	Timezone  string     `json:"timezone"`
	Days      []DaySlots `json:"days"`
}

// DaySlots слоты одного календарного дня
type DaySlots struct {
	Date  string `json:"date"` // YYYY-MM-DD в таймзоне профиля
	Slots []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	StartTime       string `json:"startTime"` // ISO 8601
	EndTime         string `json:"endTime"`   // ISO 8601
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *SlotsResponse {
	days := make([]DaySlots, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]Slot, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = Slot{
				StartTime:       slot.StartTime.Format(time.RFC3339),
				EndTime:         slot.EndTime.Format(time.RFC3339),
				DurationMinutes: slot.DurationMinutes,
			}
		}
		days[i] = DaySlots{
			Date:  day.Date,
			Slots: slots,
		}
	}

	return &SlotsResponse{
		ProfileID: resp.ProfileID,
		Timezone:  resp.Timezone,
		Days:      days,
	}
}
