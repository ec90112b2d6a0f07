package generate_slots

import (
	"time"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	"github.com/m04kA/IB-AvailabilityService/pkg/tzclock"
)

// timeSpan интервал-«занято» от существующего бронирования,
// уже расширенный буферами
type timeSpan struct {
	start time.Time
	end   time.Time
}

// GenerateSlots строит по нормализованной модели доступности список
// бронируемых слотов на каждый день окна, начиная с now.
//
// Алгоритм: для каждого дня окна берутся блоки расписания (с учётом
// исключений на дату), по каждому блоку курсор идёт с шагом
// incrementsMinutes, и на каждой позиции пробуется каждая разрешённая
// длительность. Кандидат отбрасывается, если выходит за конец блока,
// нарушает минимальный notice или пересекается с бронированием,
// расширенным буферами. Дни без слотов в результат не попадают.
//
// Единственная ошибка — неразрешимое имя часового пояса: для
// нормализованной модели все остальные входные данные корректны.
func GenerateSlots(model domain.AvailabilityModel, bookings []domain.Booking, now time.Time) ([]domain.DaySlots, error) {
	loc, err := model.Location()
	if err != nil {
		return nil, err
	}

	rules := model.Rules

	increment := time.Duration(rules.IncrementsMinutes) * time.Minute
	if increment <= 0 {
		increment = domain.DefaultIncrementsMinutes * time.Minute
	}

	minNotice := time.Duration(rules.MinNoticeHours) * time.Hour

	durations := rules.AllowedDurationsMinutes
	if len(durations) == 0 {
		durations = []int{domain.FallbackDurationMinutes}
	}

	busy := expandBookings(bookings, rules.BufferBeforeMinutes, rules.BufferAfterMinutes)

	var result []domain.DaySlots

	for d := 0; d <= rules.WindowDays; d++ {
		date := now.In(loc).AddDate(0, 0, d)
		dayKey := tzclock.DateKey(date, loc)

		blocks := blocksForDate(model, date, dayKey, loc)
		if len(blocks) == 0 {
			continue
		}

		var daySlots []domain.Slot
		for _, block := range blocks {
			blockStart := tzclock.At(date, block.Start, loc)
			blockEnd := tzclock.At(date, block.End, loc)

			for cursor := blockStart; cursor.Before(blockEnd); cursor = cursor.Add(increment) {
				// Граница включительно: слот ровно за minNotice до
				// старта ещё бронируем
				if cursor.Sub(now) < minNotice {
					continue
				}

				// Длительность — внутренний цикл: у конца блока длинные
				// варианты отпадают, короткие остаются
				for _, dur := range durations {
					end := cursor.Add(time.Duration(dur) * time.Minute)
					if end.After(blockEnd) {
						continue
					}
					if overlapsAnyBusy(cursor, end, busy) {
						continue
					}
					daySlots = append(daySlots, domain.Slot{
						StartTime:       cursor,
						EndTime:         end,
						DurationMinutes: dur,
					})
				}
			}
		}

		// Дневной лимит: остаются первые dailyCap слотов (самые ранние,
		// блоки отсортированы по началу)
		if rules.HasDailyCap() && len(daySlots) > rules.DailyCap {
			daySlots = daySlots[:rules.DailyCap]
		}

		if len(daySlots) > 0 {
			result = append(result, domain.DaySlots{Date: dayKey, Slots: daySlots})
		}
	}

	return result, nil
}

// blocksForDate возвращает блоки расписания на конкретную дату.
// Исключение на дату имеет приоритет над недельным расписанием:
// заблокированная дата не бронируется вовсе, override подменяет блоки
// даже для выключенного дня недели.
func blocksForDate(model domain.AvailabilityModel, date time.Time, dayKey string, loc *time.Location) []domain.TimeBlock {
	if ex, ok := model.ExceptionFor(dayKey); ok {
		if ex.Kind == domain.ExceptionBlocked {
			return nil
		}
		return ex.Blocks
	}

	day := model.Day(domain.WeekdayOf(tzclock.Weekday(date, loc)))
	if !day.Enabled {
		return nil
	}
	return day.Blocks
}

// expandBookings переводит активные бронирования в занятые интервалы,
// расширенные буферами до и после
func expandBookings(bookings []domain.Booking, bufferBefore, bufferAfter int) []timeSpan {
	spans := make([]timeSpan, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		if !b.IsActive() {
			continue
		}
		spans = append(spans, timeSpan{
			start: b.StartTime.Add(-time.Duration(bufferBefore) * time.Minute),
			end:   b.EndTime.Add(time.Duration(bufferAfter) * time.Minute),
		})
	}
	return spans
}

// overlapsAnyBusy строгая проверка пересечения полуоткрытых интервалов:
// касание границами пересечением не считается
func overlapsAnyBusy(start, end time.Time, busy []timeSpan) bool {
	for _, s := range busy {
		if start.Before(s.end) && s.start.Before(end) {
			return true
		}
	}
	return false
}
