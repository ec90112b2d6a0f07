package update_availability

import (
	"encoding/json"

	"github.com/m04kA/IB-AvailabilityService/internal/service/availability/models"
)

// ToServiceRequest оборачивает сырое тело запроса в модель сервиса.
// Тело не разбирается на уровне HTTP: любая структура нормализуется
// сервисом до канонической формы
func ToServiceRequest(userID, profileID int64, payload json.RawMessage) *models.UpdateAvailabilityRequest {
	return &models.UpdateAvailabilityRequest{
		UserID:    userID,
		ProfileID: profileID,
		Payload:   payload,
	}
}
