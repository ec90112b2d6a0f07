package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusConfirmed            BookingStatus = "confirmed"
	StatusCompleted            BookingStatus = "completed"
	StatusCancelledByOwner     BookingStatus = "cancelled_by_owner"
	StatusCancelledByRecruiter BookingStatus = "cancelled_by_recruiter"
	StatusNoShow               BookingStatus = "no_show"
)

// InactiveStatuses бронирования в этих статусах больше не блокируют слоты
var InactiveStatuses = []BookingStatus{
	StatusCancelledByOwner,
	StatusCancelledByRecruiter,
	StatusNoShow,
}

// Booking подтверждённое интервью на профиле кандидата.
// StartTime/EndTime — абсолютные моменты времени; генератор слотов
// смотрит только на эти два поля
type Booking struct {
	ID              int64
	ProfileID       int64
	RecruiterName   string
	RecruiterEmail  string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          BookingStatus

	// ManageToken позволяет рекрутеру смотреть и отменять бронирование без
	// аккаунта, по manage-ссылке из письма-подтверждения
	ManageToken uuid.UUID

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование всё ещё блокирует пересекающиеся слоты
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByOwner &&
		b.Status != StatusCancelledByRecruiter &&
		b.Status != StatusNoShow
}

// CanBeCancelled возвращает true, если бронирование ещё можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// ProfileBookingsFilter фильтр выборки бронирований одного профиля
type ProfileBookingsFilter struct {
	ProfileID       int64
	StartTime       *time.Time     // Начало периода, включительно (nil = без ограничения)
	EndTime         *time.Time     // Конец периода, исключительно (nil = без ограничения)
	Status          *BookingStatus // Точный фильтр по статусу (опционально)
	IncludeInactive bool           // Включить отменённые и no-show бронирования
}
