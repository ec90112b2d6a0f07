package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ProfileID       int64     // ID профиля кандидата
	StartTime       time.Time // Абсолютное время начала слота
	DurationMinutes int       // Длительность интервью
	RecruiterName   string    // Имя рекрутера
	RecruiterEmail  string    // Email рекрутера для manage-ссылки
	Notes           *string   // Опциональный комментарий
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ProfileID       int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          domain.BookingStatus
	ManageToken     uuid.UUID
	CreatedAt       time.Time
}

// fromDomain конвертирует domain.Booking в ответ use case
func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		ProfileID:       b.ProfileID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		ManageToken:     b.ManageToken,
		CreatedAt:       b.CreatedAt,
	}
}
