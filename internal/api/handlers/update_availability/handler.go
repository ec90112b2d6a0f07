package update_availability

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/IB-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/IB-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/IB-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidProfileID   = "некорректный ID профиля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProfileNotFound    = "профиль не найден"
	msgForbidden          = "доступ запрещен"
)

// Тела больше мегабайта не принимаем
const maxBodySize = 1 << 20

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/profiles/{profileId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	profileIDStr := vars["profileId"]

	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /profiles/{id}/availability - Invalid profile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfileID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /profiles/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Читаем тело как есть: валидируем только, что это JSON-объект
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.logger.Warn("PUT /profiles/{id}/availability - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	defer r.Body.Close()

	if !json.Valid(body) {
		h.logger.Warn("PUT /profiles/{id}/availability - Invalid JSON body: profile_id=%d", profileID)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := ToServiceRequest(userID, profileID, body)

	result, err := h.service.Update(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrProfileNotFound):
			h.logger.Warn("PUT /profiles/{id}/availability - Profile not found: profile_id=%d", profileID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /profiles/{id}/availability - Access denied: profile_id=%d, user_id=%d",
				profileID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /profiles/{id}/availability - Invalid input: profile_id=%d, error=%v",
				profileID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /profiles/{id}/availability - Failed to update availability: profile_id=%d, error=%v",
				profileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /profiles/{id}/availability - Availability updated successfully: profile_id=%d, user_id=%d",
		profileID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
