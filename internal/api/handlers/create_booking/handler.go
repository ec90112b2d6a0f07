package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/IB-AvailabilityService/internal/api/handlers"
	createBooking "github.com/m04kA/IB-AvailabilityService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается ISO 8601"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgProfileNotFound    = "профиль не найден"
	msgDurationNotAllowed = "длительность не входит в список разрешённых"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: profile_id=%d, start=%s",
				req.ProfileID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrProfileNotFound):
			h.logger.Warn("POST /bookings - Profile not found: profile_id=%d", req.ProfileID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, createBooking.ErrDurationNotAllowed):
			h.logger.Warn("POST /bookings - Duration not allowed: profile_id=%d, duration=%d",
				req.ProfileID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgDurationNotAllowed)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: profile_id=%d, error=%v", req.ProfileID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: profile_id=%d, error=%v",
				req.ProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, profile_id=%d",
		result.ID, req.ProfileID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
