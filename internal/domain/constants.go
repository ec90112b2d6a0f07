package domain

// Правила бронирования по умолчанию, подставляемые вместо отсутствующих значений
const (
	DefaultMinNoticeHours      = 24
	DefaultWindowDays          = 60
	DefaultIncrementsMinutes   = 30
	DefaultBufferBeforeMinutes = 15
	DefaultBufferAfterMinutes  = 15
	DefaultDailyCap            = 0 // 0 = unlimited
)

// DefaultAllowedDurationsMinutes длительности интервью, предлагаемые когда
// владелец не выбрал свои
var DefaultAllowedDurationsMinutes = []int{15, 30, 60}

// FallbackDurationMinutes используется генератором слотов при пустом списке
// длительностей (например, все значения были отброшены при нормализации)
const FallbackDurationMinutes = 30

// Константы бизнес-валидации
const (
	MinIncrementsMinutes = 5
	MaxIncrementsMinutes = 240
	MaxWindowDays        = 365
	MaxNoticeHours       = 24 * 90
	MaxDurationMinutes   = 8 * 60
	MaxReasonLength      = 500
	MaxRecruiterName     = 200
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
