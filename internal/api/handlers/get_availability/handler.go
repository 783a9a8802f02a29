package get_availability

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

// Handle GET /api/v1/advisors/{advisorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	advisorID, err := strconv.ParseInt(vars["advisorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/availability - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /advisors/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListWindows(r.Context(), &models.ListWindowsRequest{
		UserID:    userID,
		AdvisorID: advisorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAdvisorNotFound):
			h.logger.Warn("GET /advisors/{id}/availability - Advisor not found: advisor_id=%d", advisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("GET /advisors/{id}/availability - Access denied: advisor_id=%d, user_id=%d",
				advisorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /advisors/{id}/availability - Failed to list windows: advisor_id=%d, error=%v",
				advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /advisors/{id}/availability - Windows retrieved successfully: advisor_id=%d, count=%d",
		advisorID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
