package domain

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/m04kA/IB-AvailabilityService/pkg/types"
)

// NormalizeAvailability превращает произвольное декодированное JSON-значение
// в полностью валидную AvailabilityModel. Это санитизирующая граница между
// недоверенным хранилищем/вводом и остальным ядром, поэтому функция никогда
// не завершается ошибкой: отсутствующие поля получают значения по умолчанию,
// битые блоки отбрасываются, значения правил приводятся с откатом к дефолту.
//
// Функция идемпотентна: нормализация JSON уже нормализованной модели даёт
// равную модель
func NormalizeAvailability(raw interface{}) AvailabilityModel {
	out := CreateDefaultAvailability()

	src, ok := raw.(map[string]interface{})
	if !ok {
		return out
	}

	if tz, ok := src["timezone"].(string); ok && tz != "" {
		out.Timezone = tz
	}

	weekly, _ := src["weekly"].(map[string]interface{})
	for wd := Sunday; wd <= Saturday; wd++ {
		day, _ := weekly[wd.Key()].(map[string]interface{})
		out.Weekly[wd] = normalizeDay(day)
	}

	rules, _ := src["rules"].(map[string]interface{})
	out.Rules = normalizeRules(rules)

	if exceptions, ok := src["exceptions"].([]interface{}); ok {
		out.Exceptions = normalizeExceptions(exceptions)
	}

	return out
}

// NormalizeAvailabilityJSON это NormalizeAvailability поверх сырого JSON.
// Недекодируемый вход деградирует до модели по умолчанию
func NormalizeAvailabilityJSON(data []byte) AvailabilityModel {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return CreateDefaultAvailability()
	}
	return NormalizeAvailability(raw)
}

// NormalizeRules санирует фрагмент правил сам по себе. Используется
// SetRules: частичный или битый патч всё равно даёт валидные правила
func NormalizeRules(raw interface{}) BookingRules {
	rules, _ := raw.(map[string]interface{})
	return normalizeRules(rules)
}

func normalizeDay(day map[string]interface{}) DaySchedule {
	out := DaySchedule{Enabled: truthy(day["enabled"]), Blocks: []TimeBlock{}}

	blocks, _ := day["blocks"].([]interface{})
	for _, rb := range blocks {
		bm, ok := rb.(map[string]interface{})
		if !ok {
			continue
		}
		block := TimeBlock{
			Start: types.TimeString(stringOr(bm["start"])),
			End:   types.TimeString(stringOr(bm["end"])),
		}
		if IsValidBlock(block) {
			out.Blocks = append(out.Blocks, block)
		}
	}

	sort.Slice(out.Blocks, func(i, j int) bool {
		return out.Blocks[i].Start.IsBefore(out.Blocks[j].Start)
	})

	// Из пересекающейся пары остаётся более ранний блок: инвариант
	// непересечения держится и для нормализованных моделей, не только
	// для мутированных
	kept := out.Blocks[:0]
	for _, b := range out.Blocks {
		if len(kept) == 0 || !BlocksOverlap(b, kept[len(kept)-1]) {
			kept = append(kept, b)
		}
	}
	out.Blocks = kept

	return out
}

func normalizeRules(r map[string]interface{}) BookingRules {
	out := BookingRules{
		MinNoticeHours:      intOr(r["minNoticeHours"], DefaultMinNoticeHours),
		WindowDays:          intOr(r["windowDays"], DefaultWindowDays),
		IncrementsMinutes:   intOr(r["incrementsMinutes"], DefaultIncrementsMinutes),
		BufferBeforeMinutes: intOr(r["bufferBeforeMinutes"], DefaultBufferBeforeMinutes),
		BufferAfterMinutes:  intOr(r["bufferAfterMinutes"], DefaultBufferAfterMinutes),
		DailyCap:            capOr(r["dailyCap"]),
	}

	if durations, ok := r["allowedDurationsMinutes"].([]interface{}); ok && len(durations) > 0 {
		out.AllowedDurationsMinutes = []int{}
		for _, d := range durations {
			if n, ok := asInt(d); ok && n > 0 {
				out.AllowedDurationsMinutes = append(out.AllowedDurationsMinutes, n)
			}
		}
	} else {
		out.AllowedDurationsMinutes = append([]int(nil), DefaultAllowedDurationsMinutes...)
	}

	return out
}

func normalizeExceptions(raw []interface{}) []DateException {
	var out []DateException
	seen := map[string]struct{}{}

	for _, re := range raw {
		em, ok := re.(map[string]interface{})
		if !ok {
			continue
		}
		date := stringOr(em["date"])
		if _, err := time.Parse(DateFormat, date); err != nil {
			continue
		}
		if _, dup := seen[date]; dup {
			continue
		}

		ex := DateException{Date: date}
		switch stringOr(em["kind"]) {
		case string(ExceptionBlocked), "block":
			ex.Kind = ExceptionBlocked
		default:
			ex.Kind = ExceptionOverride
			ex.Blocks = normalizeDay(map[string]interface{}{"blocks": em["blocks"]}).Blocks
		}

		seen[date] = struct{}{}
		out = append(out, ex)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// truthy повторяет нестрогую JSON-истинность, чтобы записи, сохранённые
// старым фронтендом, не поменяли смысл
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}

func stringOr(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asInt приводит декодированный JSON-скаляр к int
func asInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

func intOr(v interface{}, dflt int) int {
	if n, ok := asInt(v); ok {
		return n
	}
	return dflt
}

// capOr оставляет дневной лимит безлимитным (0), если на входе не
// положительное число. Пустая строка — legacy-маркер "без лимита"
func capOr(v interface{}) int {
	if v == nil {
		return DefaultDailyCap
	}
	if s, ok := v.(string); ok && s == "" {
		return DefaultDailyCap
	}
	if n, ok := asInt(v); ok && n > 0 {
		return n
	}
	return DefaultDailyCap
}
