package domain

import (
	"encoding/json"
	"time"
)

// AvailabilityRecord хранимая форма доступности профиля: непрозрачный
// JSON-payload, принадлежащий слою персистентности. Payload всегда проходит
// нормализацию до того, как ядро его касается, поэтому частичная или битая
// запись деградирует до безопасных дефолтов, а не падает
type AvailabilityRecord struct {
	ProfileID int64
	OwnerID   int64
	Payload   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Model возвращает нормализованную модель доступности из записи
func (r *AvailabilityRecord) Model() AvailabilityModel {
	return NormalizeAvailabilityJSON(r.Payload)
}
