package get_profile_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/IB-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/IB-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/IB-AvailabilityService/internal/service/bookings"
)

const (
	msgInvalidProfileID = "некорректный ID профиля"
	msgInvalidParams    = "некорректные параметры запроса"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgProfileNotFound  = "профиль не найден"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/profiles/{profileId}/bookings
// Query params (все опциональны): from (YYYY-MM-DD), to (YYYY-MM-DD),
// status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	profileIDStr := vars["profileId"]

	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /profiles/{id}/bookings - Invalid profile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfileID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /profiles/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	statusStr := r.URL.Query().Get("status")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(profileID, userID, fromStr, toStr, statusStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /profiles/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования профиля (сервис сам проверит права владельца)
	result, err := h.service.GetProfileBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrProfileNotFound):
			h.logger.Warn("GET /profiles/{id}/bookings - Profile not found: profile_id=%d", profileID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /profiles/{id}/bookings - Access denied: profile_id=%d, user_id=%d",
				profileID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /profiles/{id}/bookings - Invalid input: profile_id=%d, error=%v", profileID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /profiles/{id}/bookings - Failed to get bookings: profile_id=%d, error=%v",
				profileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /profiles/{id}/bookings - Bookings retrieved successfully: profile_id=%d, count=%d",
		profileID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
