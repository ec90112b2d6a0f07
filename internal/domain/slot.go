package domain

import "time"

// Slot конкретный бронируемый слот: абсолютные моменты начала и конца
// плюс длительность интервью, которую они представляют
type Slot struct {
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
}

// Overlaps тест пересечения полуинтервалов против [start, end)
func (s Slot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && start.Before(s.EndTime)
}

// DaySlots группирует слоты дня под ключом календарной даты в таймзоне
// модели
type DaySlots struct {
	Date  string // YYYY-MM-DD
	Slots []Slot
}
