package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/IB-AvailabilityService/pkg/types"
)

// Weekday индекс дня в недельном расписании. Значения совпадают с
// time.Weekday (воскресенье = 0), так что переход от календарной даты
// не требует пересчёта
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// Key возвращает короткий ключ дня в JSON-представлении
func (d Weekday) Key() string {
	if d < 0 || d > 6 {
		return ""
	}
	return weekdayKeys[d]
}

// ParseWeekday конвертирует короткий ключ ("sun".."sat") в Weekday
func ParseWeekday(s string) (Weekday, bool) {
	for i, k := range weekdayKeys {
		if k == s {
			return Weekday(i), true
		}
	}
	return 0, false
}

// WeekdayOf конвертирует time.Weekday
func WeekdayOf(wd time.Weekday) Weekday {
	return Weekday(wd)
}

// TimeBlock непрерывный интервал локального времени внутри одного дня,
// в котором допускаются бронирования. Для валидного блока всегда
// Start < End
type TimeBlock struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DaySchedule настройка одного дня недели. Блоки отсортированы по началу
// и попарно не пересекаются; оба инварианта поддерживаются нормализацией
// и мутаторами
type DaySchedule struct {
	Enabled bool        `json:"enabled"`
	Blocks  []TimeBlock `json:"blocks"`
}

// WeeklySchedule семь дневных расписаний, индексированных Weekday.
// В JSON сериализуется объектом с ключами "sun".."sat"
type WeeklySchedule [7]DaySchedule

// MarshalJSON сериализует фиксированный массив как объект с ключами дней
func (w WeeklySchedule) MarshalJSON() ([]byte, error) {
	out := make(map[string]DaySchedule, 7)
	for i, day := range w {
		out[weekdayKeys[i]] = day
	}
	return json.Marshal(out)
}

// UnmarshalJSON принимает объект с ключами дней; неизвестные ключи
// игнорируются, отсутствующие дни остаются выключенными и пустыми
func (w *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var raw map[string]DaySchedule
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, day := range raw {
		if wd, ok := ParseWeekday(key); ok {
			w[wd] = day
		}
	}
	return nil
}

// ExceptionKind определяет, как исключение для даты меняет недельное расписание
type ExceptionKind string

const (
	// ExceptionBlocked полностью закрывает дату для бронирования
	ExceptionBlocked ExceptionKind = "blocked"
	// ExceptionOverride заменяет блоки дня недели для этой даты
	ExceptionOverride ExceptionKind = "override"
)

// DateException отклонение от недельного расписания для конкретной даты
type DateException struct {
	Date   string        `json:"date"` // YYYY-MM-DD
	Kind   ExceptionKind `json:"kind"`
	Blocks []TimeBlock   `json:"blocks,omitempty"`
}

// BookingRules правила, по которым из недельного расписания получаются
// конкретные слоты
type BookingRules struct {
	MinNoticeHours          int   `json:"minNoticeHours"`
	WindowDays              int   `json:"windowDays"`
	IncrementsMinutes       int   `json:"incrementsMinutes"`
	BufferBeforeMinutes     int   `json:"bufferBeforeMinutes"`
	BufferAfterMinutes      int   `json:"bufferAfterMinutes"`
	DailyCap                int   `json:"dailyCap"` // 0 = unlimited
	AllowedDurationsMinutes []int `json:"allowedDurationsMinutes"`
}

// HasDailyCap сообщает, ограничено ли число слотов в день
func (r BookingRules) HasDailyCap() bool {
	return r.DailyCap > 0
}

// AvailabilityModel корневой агрегат: недельное расписание кандидата,
// правила бронирования и исключения по датам, всё в таймзоне Timezone.
//
// Модель является значением: мутаторы не изменяют получателя, каждая
// операция возвращает свежую копию, поэтому модель безопасно разделять
// между конкурентными читателями без блокировок
type AvailabilityModel struct {
	Timezone   string          `json:"timezone"`
	Weekly     WeeklySchedule  `json:"weekly"`
	Rules      BookingRules    `json:"rules"`
	Exceptions []DateException `json:"exceptions,omitempty"`
}

// DefaultTimezone возвращает имя зоны хоста; если рантайм знает её только
// как "Local" — возвращает UTC
func DefaultTimezone() string {
	name := time.Now().Location().String()
	if name == "" || name == "Local" {
		return "UTC"
	}
	return name
}

// CreateDefaultAvailability возвращает модель со всеми выключенными днями
// и правилами по умолчанию. Никогда не завершается ошибкой
func CreateDefaultAvailability() AvailabilityModel {
	m := AvailabilityModel{
		Timezone: DefaultTimezone(),
		Rules: BookingRules{
			MinNoticeHours:          DefaultMinNoticeHours,
			WindowDays:              DefaultWindowDays,
			IncrementsMinutes:       DefaultIncrementsMinutes,
			BufferBeforeMinutes:     DefaultBufferBeforeMinutes,
			BufferAfterMinutes:      DefaultBufferAfterMinutes,
			DailyCap:                DefaultDailyCap,
			AllowedDurationsMinutes: append([]int(nil), DefaultAllowedDurationsMinutes...),
		},
	}
	for i := range m.Weekly {
		m.Weekly[i] = DaySchedule{Enabled: false, Blocks: []TimeBlock{}}
	}
	return m
}

// Location загружает таймзону модели. Неразрешимое имя зоны —
// единственная ошибка конфигурации, которую ядро не умеет чинить
func (m AvailabilityModel) Location() (*time.Location, error) {
	name := m.Timezone
	if name == "" {
		name = DefaultTimezone()
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnresolvableTimezone, name, err)
	}
	return loc, nil
}

// Day возвращает расписание указанного дня недели
func (m AvailabilityModel) Day(d Weekday) DaySchedule {
	return m.Weekly[d]
}

// ExceptionFor возвращает исключение для даты, если оно задано
func (m AvailabilityModel) ExceptionFor(date string) (DateException, bool) {
	for _, ex := range m.Exceptions {
		if ex.Date == date {
			return ex, true
		}
	}
	return DateException{}, false
}

// Clone возвращает глубокую копию модели
func (m AvailabilityModel) Clone() AvailabilityModel {
	out := m
	for i := range out.Weekly {
		out.Weekly[i].Blocks = append([]TimeBlock(nil), m.Weekly[i].Blocks...)
		if out.Weekly[i].Blocks == nil {
			out.Weekly[i].Blocks = []TimeBlock{}
		}
	}
	out.Rules.AllowedDurationsMinutes = append([]int(nil), m.Rules.AllowedDurationsMinutes...)
	if m.Exceptions != nil {
		out.Exceptions = make([]DateException, len(m.Exceptions))
		for i, ex := range m.Exceptions {
			out.Exceptions[i] = ex
			out.Exceptions[i].Blocks = append([]TimeBlock(nil), ex.Blocks...)
		}
	}
	return out
}
