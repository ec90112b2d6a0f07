package generate_slots

import (
	"time"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
)

// Request модель запроса на генерацию слотов
type Request struct {
	ProfileID       int64      // ID профиля кандидата
	From            *time.Time // Опционально: скрыть дни раньше этой даты
	Days            *int       // Опционально: сузить окно генерации (дней от «сейчас»)
	DurationMinutes *int       // Опционально: оставить только одну длительность
}

// Response модель ответа со слотами, сгруппированными по дням.
// Дни без слотов в список не входят.
type Response struct {
	ProfileID int64
	Timezone  string
	Days      []domain.DaySlots
}
