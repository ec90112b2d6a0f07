package types

import (
	"fmt"
	"regexp"
	"time"
)

// TimeString локальное время суток в фиксированном 24-часовом формате
// "HH:MM". Формат с ведущими нулями делает лексикографическое сравнение
// эквивалентным хронологическому, поэтому тип хранит строку как есть.
// "24:00" допускается как исключительная граница конца дня
type TimeString string

var timeStringRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// NewTimeString усекает t до минут и возвращает его локальное время суток
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString валидирует s как "HH:MM" (00:00 .. 24:00)
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := parseMinutes(s); err != nil {
		return "", err
	}
	return TimeString(s), nil
}

func parseMinutes(s string) (int, error) {
	if !timeStringRe.MatchString(s) {
		return 0, fmt.Errorf("invalid time string %q: expected HH:MM", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time string %q: out of range", s)
	}
	return h*60 + m, nil
}

// IsValid проверяет, что значение содержит корректный "HH:MM"
func (t TimeString) IsValid() bool {
	_, err := parseMinutes(string(t))
	return err == nil
}

func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает время суток в минутах с полуночи
func (t TimeString) Minutes() (int, error) {
	return parseMinutes(string(t))
}

// Hour возвращает часовую компоненту. Ноль для невалидных значений
func (t TimeString) Hour() int {
	m, err := parseMinutes(string(t))
	if err != nil {
		return 0
	}
	return m / 60
}

// Minute возвращает минутную компоненту. Ноль для невалидных значений
func (t TimeString) Minute() int {
	m, err := parseMinutes(string(t))
	if err != nil {
		return 0
	}
	return m % 60
}

// AddMinutes возвращает время суток на mins минут позже. Выход за пределы
// дня — ошибка: дневное расписание никогда не переходит через полночь
func (t TimeString) AddMinutes(mins int) (TimeString, error) {
	total, err := parseMinutes(string(t))
	if err != nil {
		return "", err
	}
	total += mins
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("time %s%+dm is outside the day", t, mins)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore проверяет t < other. Корректно только для валидных значений
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter проверяет t > other. Корректно только для валидных значений
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}
