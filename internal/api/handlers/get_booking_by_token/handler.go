package get_booking_by_token

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/IB-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/IB-AvailabilityService/internal/service/bookings"
)

const (
	msgInvalidToken = "некорректный токен управления"
	msgNotFound     = "бронирование не найдено"
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

// Handle GET /api/v1/bookings/manage/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	token, err := uuid.Parse(vars["token"])
	if err != nil {
		h.logger.Warn("GET /bookings/manage/{token} - Invalid token: %v", err)
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	booking, err := h.service.GetByManageToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			// Несуществующий токен и несуществующее бронирование неразличимы
			h.logger.Warn("GET /bookings/manage/{token} - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/manage/{token} - Failed to get booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/manage/{token} - Booking retrieved successfully: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
