// Package tzclock проецирует пары «календарный день + локальное время»
// на абсолютные моменты в именованной таймзоне. Вся временная арифметика
// генератора слотов идёт через эти хелперы: расписание, объявленное в одной
// зоне, даёт корректные моменты независимо от локальной зоны хоста.
package tzclock

import (
	"time"

	"github.com/m04kA/IB-AvailabilityService/pkg/types"
)

const dateKeyFormat = "2006-01-02"

// At возвращает момент, в который часы в loc показывают t в календарный
// день, содержащий ref (с точки зрения loc).
//
// Показание, не существующее из-за весеннего перевода часов, разрешается
// вперёд через разрыв (02:30 в часовом разрыве даёт 03:30): слот не может
// начаться раньше объявленного начала блока. Показание, повторяющееся при
// осеннем переводе, разрешается в то вхождение, которое выбирает time.Date;
// оба абсолютных момента повторенного часа при этом остаются различимыми
// для обхода по абсолютному времени.
func At(ref time.Time, t types.TimeString, loc *time.Location) time.Time {
	return AtClock(ref, t.Hour(), t.Minute(), loc)
}

// AtClock это At с явной парой час/минута
func AtClock(ref time.Time, hour, minute int, loc *time.Location) time.Time {
	y, m, d := ref.In(loc).Date()
	out := time.Date(y, m, d, hour, minute, 0, 0, loc)

	// time.Date разрешает несуществующее показание в одну из соседних зон,
	// причём сторона не специфицирована. Если показание результата не
	// совпало с запрошенным, сдвигаем вперёд на величину разрыва.
	if gotH, gotM, _ := out.Clock(); gotH != hour || gotM != minute {
		skew := (hour*60 + minute) - (gotH*60 + gotM)
		if skew < -12*60 {
			skew += 24 * 60
		} else if skew > 12*60 {
			skew -= 24 * 60
		}
		if skew > 0 {
			out = out.Add(time.Duration(skew) * time.Minute)
		}
	}

	return out
}

// DateKey форматирует календарную дату t с точки зрения loc ("YYYY-MM-DD").
// Используется как ключ дня в выводе генератора слотов
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyFormat)
}

// ParseDateKey парсит строку "YYYY-MM-DD" как полночь в loc
func ParseDateKey(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateKeyFormat, s, loc)
}

// StartOfDay возвращает полночь календарного дня t с точки зрения loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Weekday возвращает день недели t с точки зрения loc
func Weekday(t time.Time, loc *time.Location) time.Weekday {
	return t.In(loc).Weekday()
}
