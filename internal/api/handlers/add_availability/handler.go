package add_availability

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
	msgInvalidAdvisorID   = "некорректный ID консультанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректное окно доступности"
	msgAdvisorNotFound    = "консультант не найден"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/advisors/{advisorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	advisorID, err := strconv.ParseInt(vars["advisorId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /advisors/{id}/availability - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /advisors/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /advisors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddWindow(r.Context(), &models.AddWindowRequest{
		UserID:       userID,
		AdvisorID:    advisorID,
		Recurring:    req.Recurring,
		DayOfWeek:    req.DayOfWeek,
		SpecificDate: req.SpecificDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAdvisorNotFound):
			h.logger.Warn("POST /advisors/{id}/availability - Advisor not found: advisor_id=%d", advisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /advisors/{id}/availability - Access denied: advisor_id=%d, user_id=%d",
				advisorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidWindow), errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /advisors/{id}/availability - Invalid window: advisor_id=%d, error=%v",
				advisorID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("POST /advisors/{id}/availability - Failed to add window: advisor_id=%d, error=%v",
				advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /advisors/{id}/availability - Window added successfully: window_id=%d, advisor_id=%d",
		result.ID, advisorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
