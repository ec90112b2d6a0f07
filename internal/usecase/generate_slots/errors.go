package generate_slots

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль не найден
	ErrProfileNotFound = errors.New("profile not found")

	// ErrDurationNotAllowed возвращается, когда запрошенная длительность
	// не входит в список разрешённых владельцем профиля
	ErrDurationNotAllowed = errors.New("duration is not allowed for this profile")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
