package domain

import "errors"

var (
	// ErrInvalidWeekday возвращается мутаторами для дня недели вне Sunday..Saturday
	ErrInvalidWeekday = errors.New("availability: invalid weekday")

	// ErrInvalidBlock возвращается, когда блок не проходит валидацию формата или порядка границ
	ErrInvalidBlock = errors.New("availability: invalid time block")

	// ErrBlockOverlap возвращается, когда новый блок пересекается с существующим в том же дне
	ErrBlockOverlap = errors.New("availability: block overlaps an existing block")

	// ErrBlockIndexOutOfRange возвращается RemoveBlock для индекса вне списка блоков дня
	ErrBlockIndexOutOfRange = errors.New("availability: block index out of range")

	// ErrUnresolvableTimezone возвращается, когда имя таймзоны модели не удаётся загрузить
	ErrUnresolvableTimezone = errors.New("availability: unresolvable timezone")
)
