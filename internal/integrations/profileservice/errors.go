package profileservice

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль не найден
	ErrProfileNotFound = errors.New("profileservice: profile not found")

	// ErrInvalidResponse возвращается при некорректном ответе ProfileService
	ErrInvalidResponse = errors.New("profileservice: invalid response")

	// ErrInternal возвращается при ошибках выполнения запроса
	ErrInternal = errors.New("profileservice: internal error")
)
