package create_booking

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль не найден
	ErrProfileNotFound = errors.New("profile not found")

	// ErrSlotNotAvailable возвращается, когда запрошенный слот не входит
	// в список бронируемых (занят, нарушает notice или вне расписания)
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrDurationNotAllowed возвращается, когда длительность не входит
	// в разрешённый список владельца профиля
	ErrDurationNotAllowed = errors.New("duration is not allowed for this profile")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
