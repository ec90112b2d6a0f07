package domain

import (
	"sort"
	"time"
)

// Мутаторы чистые: входная модель получателя не изменяется, результат —
// свежее значение. При отказе возвращается исходная модель вместе с
// sentinel-ошибкой, называющей причину

// SetDayEnabled переключает флаг enabled одного дня
func (m AvailabilityModel) SetDayEnabled(day Weekday, enabled bool) (AvailabilityModel, error) {
	if day < Sunday || day > Saturday {
		return m, ErrInvalidWeekday
	}
	next := m.Clone()
	next.Weekly[day].Enabled = enabled
	return next, nil
}

// AddBlock валидирует блок и проверяет его против всех существующих блоков
// дня. Соприкасающиеся блоки (один кончается ровно там, где начинается
// другой) разрешены; любой общий момент времени — конфликт
func (m AvailabilityModel) AddBlock(day Weekday, block TimeBlock) (AvailabilityModel, error) {
	if day < Sunday || day > Saturday {
		return m, ErrInvalidWeekday
	}
	if !IsValidBlock(block) {
		return m, ErrInvalidBlock
	}
	if overlapsAny(block, m.Weekly[day].Blocks) {
		return m, ErrBlockOverlap
	}

	next := m.Clone()
	next.Weekly[day].Blocks = append(next.Weekly[day].Blocks, block)
	sort.Slice(next.Weekly[day].Blocks, func(i, j int) bool {
		return next.Weekly[day].Blocks[i].Start.IsBefore(next.Weekly[day].Blocks[j].Start)
	})
	return next, nil
}

// RemoveBlock удаляет блок по индексу из списка дня. Индекс вне списка —
// явная ошибка, а не тихий no-op
func (m AvailabilityModel) RemoveBlock(day Weekday, index int) (AvailabilityModel, error) {
	if day < Sunday || day > Saturday {
		return m, ErrInvalidWeekday
	}
	if index < 0 || index >= len(m.Weekly[day].Blocks) {
		return m, ErrBlockIndexOutOfRange
	}

	next := m.Clone()
	blocks := next.Weekly[day].Blocks
	next.Weekly[day].Blocks = append(blocks[:index], blocks[index+1:]...)
	return next, nil
}

// ClearBlocks очищает список блоков дня
func (m AvailabilityModel) ClearBlocks(day Weekday) (AvailabilityModel, error) {
	if day < Sunday || day > Saturday {
		return m, ErrInvalidWeekday
	}
	next := m.Clone()
	next.Weekly[day].Blocks = []TimeBlock{}
	return next, nil
}

// CopyDayToAll заменяет списки блоков всех дней глубокой копией блоков
// дня-источника. Флаги enabled не трогаются
func (m AvailabilityModel) CopyDayToAll(source Weekday) (AvailabilityModel, error) {
	if source < Sunday || source > Saturday {
		return m, ErrInvalidWeekday
	}

	next := m.Clone()
	for wd := Sunday; wd <= Saturday; wd++ {
		next.Weekly[wd].Blocks = append([]TimeBlock{}, m.Weekly[source].Blocks...)
	}
	return next, nil
}

// SetRules заменяет правила нормализованной формой патча. Патч может быть
// частичным или битым; результат всегда полностью валиден
func (m AvailabilityModel) SetRules(rulesPatch interface{}) AvailabilityModel {
	next := m.Clone()
	next.Rules = NormalizeRules(rulesPatch)
	return next
}

// SetException регистрирует или заменяет исключение для своей даты.
// Блоки override проходят ту же валидацию, что и недельные
func (m AvailabilityModel) SetException(ex DateException) (AvailabilityModel, error) {
	if _, err := time.Parse(DateFormat, ex.Date); err != nil {
		return m, ErrInvalidBlock
	}
	if ex.Kind == ExceptionOverride {
		sorted := append([]TimeBlock(nil), ex.Blocks...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.IsBefore(sorted[j].Start) })
		for i, b := range sorted {
			if !IsValidBlock(b) {
				return m, ErrInvalidBlock
			}
			if i > 0 && BlocksOverlap(b, sorted[i-1]) {
				return m, ErrBlockOverlap
			}
		}
		ex.Blocks = sorted
	} else {
		ex.Kind = ExceptionBlocked
		ex.Blocks = nil
	}

	next := m.Clone()
	for i := range next.Exceptions {
		if next.Exceptions[i].Date == ex.Date {
			next.Exceptions[i] = ex
			return next, nil
		}
	}
	next.Exceptions = append(next.Exceptions, ex)
	sort.Slice(next.Exceptions, func(i, j int) bool { return next.Exceptions[i].Date < next.Exceptions[j].Date })
	return next, nil
}

// RemoveException убирает исключение для даты, если оно есть
func (m AvailabilityModel) RemoveException(date string) AvailabilityModel {
	next := m.Clone()
	out := next.Exceptions[:0]
	for _, ex := range next.Exceptions {
		if ex.Date != date {
			out = append(out, ex)
		}
	}
	if len(out) == 0 {
		next.Exceptions = nil
	} else {
		next.Exceptions = out
	}
	return next
}
