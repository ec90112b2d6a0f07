package get_availability

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/IB-AvailabilityService/internal/api/handlers"
)

const (
	msgInvalidProfileID = "некорректный ID профиля"
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

// Handle GET /api/v1/profiles/{profileId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	profileIDStr := vars["profileId"]

	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /profiles/{id}/availability - Invalid profile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfileID)
		return
	}

	// Профиль без записи получает модель по умолчанию, not found не бывает
	availability, err := h.service.Get(r.Context(), profileID)
	if err != nil {
		h.logger.Error("GET /profiles/{id}/availability - Failed to get availability: profile_id=%d, error=%v",
			profileID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /profiles/{id}/availability - Availability retrieved successfully: profile_id=%d", profileID)
	handlers.RespondJSON(w, http.StatusOK, availability)
}
