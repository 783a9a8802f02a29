package get_advisor_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/finplanner/advisor-booking-service/internal/api/handlers"
	"github.com/finplanner/advisor-booking-service/internal/api/middleware"
	"github.com/finplanner/advisor-booking-service/internal/domain"
	"github.com/finplanner/advisor-booking-service/internal/service/appointments"
	"github.com/finplanner/advisor-booking-service/internal/service/appointments/models"
)

const (
	msgInvalidAdvisorID = "некорректный ID консультанта"
	msgInvalidDates     = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgInvalidStatus    = "некорректный статус записи"
	msgAdvisorNotFound  = "консультант не найден"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/advisors/{advisorId}/appointments
// Query параметры: rangeStart, rangeEnd (YYYY-MM-DD), status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	advisorID, err := strconv.ParseInt(vars["advisorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/appointments - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /advisors/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetAdvisorAppointmentsRequest{
		UserID:          userID,
		AdvisorID:       advisorID,
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}

	if raw := r.URL.Query().Get("rangeStart"); raw != "" {
		rangeStart, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /advisors/{id}/appointments - Invalid rangeStart: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDates)
			return
		}
		req.RangeStart = &rangeStart
	}

	if raw := r.URL.Query().Get("rangeEnd"); raw != "" {
		rangeEnd, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /advisors/{id}/appointments - Invalid rangeEnd: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDates)
			return
		}
		// Конец диапазона включительный: сдвигаем на конец дня
		rangeEndInclusive := rangeEnd.Add(24 * time.Hour)
		req.RangeEnd = &rangeEndInclusive
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetAdvisorAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAdvisorNotFound):
			h.logger.Warn("GET /advisors/{id}/appointments - Advisor not found: advisor_id=%d", advisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /advisors/{id}/appointments - Access denied: advisor_id=%d, user_id=%d",
				advisorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /advisors/{id}/appointments - Invalid filter: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /advisors/{id}/appointments - Failed to get appointments: advisor_id=%d, error=%v",
				advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /advisors/{id}/appointments - Appointments retrieved successfully: advisor_id=%d, count=%d",
		advisorID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
