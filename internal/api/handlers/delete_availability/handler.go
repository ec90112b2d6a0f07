package delete_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/IB-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/IB-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/IB-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidProfileID = "некорректный ID профиля"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgProfileNotFound  = "профиль не найден"
	msgForbidden        = "доступ запрещен"
)

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

// Handle DELETE /api/v1/profiles/{profileId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	profileIDStr := vars["profileId"]

	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /profiles/{id}/availability - Invalid profile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfileID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /profiles/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), profileID, userID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrProfileNotFound):
			h.logger.Warn("DELETE /profiles/{id}/availability - Profile not found: profile_id=%d", profileID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /profiles/{id}/availability - Access denied: profile_id=%d, user_id=%d",
				profileID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /profiles/{id}/availability - Failed to delete availability: profile_id=%d, error=%v",
				profileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /profiles/{id}/availability - Availability deleted successfully: profile_id=%d, user_id=%d",
		profileID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
