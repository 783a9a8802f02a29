package remove_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/finplanner/advisor-booking-service/internal/api/handlers"
	"github.com/finplanner/advisor-booking-service/internal/api/middleware"
	"github.com/finplanner/advisor-booking-service/internal/service/availability"
	"github.com/finplanner/advisor-booking-service/internal/service/availability/models"
)

const (
	msgInvalidAdvisorID = "некорректный ID консультанта"
	msgInvalidWindowID  = "некорректный ID окна доступности"
	msgWindowNotFound   = "окно доступности не найдено"
	msgAdvisorNotFound  = "консультант не найден"
	msgMissingUserID    = "отсутствует ID пользователя"
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

// Handle DELETE /api/v1/advisors/{advisorId}/availability/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	advisorID, err := strconv.ParseInt(vars["advisorId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /advisors/{id}/availability/{windowId} - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	windowID, err := strconv.ParseInt(vars["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /advisors/{id}/availability/{windowId} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /advisors/{id}/availability/{windowId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.RemoveWindow(r.Context(), &models.RemoveWindowRequest{
		UserID:    userID,
		AdvisorID: advisorID,
		WindowID:  windowID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrWindowNotFound):
			h.logger.Warn("DELETE /advisors/{id}/availability/{windowId} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, availability.ErrAdvisorNotFound):
			h.logger.Warn("DELETE /advisors/{id}/availability/{windowId} - Advisor not found: advisor_id=%d", advisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /advisors/{id}/availability/{windowId} - Access denied: advisor_id=%d, user_id=%d",
				advisorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /advisors/{id}/availability/{windowId} - Failed to remove window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /advisors/{id}/availability/{windowId} - Window removed successfully: window_id=%d, advisor_id=%d",
		windowID, advisorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
