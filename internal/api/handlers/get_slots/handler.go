package get_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/IB-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	generateSlots "github.com/m04kA/IB-AvailabilityService/internal/usecase/generate_slots"
	"github.com/m04kA/IB-AvailabilityService/pkg/ptr"
)

const (
	msgInvalidProfileID   = "некорректный ID профиля"
	msgInvalidFrom        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDays        = "некорректное значение days"
	msgInvalidDuration    = "некорректное значение duration"
	msgProfileNotFound    = "профиль не найден"
	msgDurationNotAllowed = "длительность не входит в список разрешённых"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/profiles/{profileId}/slots
// Query params (все опциональны): from (YYYY-MM-DD), days, duration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем profileId из URL
	profileIDStr := vars["profileId"]
	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /profiles/{id}/slots - Invalid profile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfileID)
		return
	}

	useCaseReq := &generateSlots.Request{ProfileID: profileID}

	// Извлекаем from из query параметров
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /profiles/{id}/slots - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		useCaseReq.From = ptr.Ptr(from)
	}

	// Извлекаем days из query параметров
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days <= 0 {
			h.logger.Warn("GET /profiles/{id}/slots - Invalid days: %q", daysStr)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		useCaseReq.Days = ptr.Ptr(days)
	}

	// Извлекаем duration из query параметров
	if durationStr := r.URL.Query().Get("duration"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil || duration <= 0 {
			h.logger.Warn("GET /profiles/{id}/slots - Invalid duration: %q", durationStr)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		useCaseReq.DurationMinutes = ptr.Ptr(duration)
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrProfileNotFound):
			h.logger.Warn("GET /profiles/{id}/slots - Profile not found: profile_id=%d", profileID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, generateSlots.ErrDurationNotAllowed):
			h.logger.Warn("GET /profiles/{id}/slots - Duration not allowed: profile_id=%d", profileID)
			handlers.RespondBadRequest(w, msgDurationNotAllowed)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("GET /profiles/{id}/slots - Invalid input: profile_id=%d, error=%v", profileID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /profiles/{id}/slots - Failed to generate slots: profile_id=%d, error=%v",
				profileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /profiles/{id}/slots - Slots generated successfully: profile_id=%d, days_count=%d",
		profileID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
