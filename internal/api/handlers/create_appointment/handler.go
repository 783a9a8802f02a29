package create_appointment

import (
	"errors"
	"net/http"

	"github.com/finplanner/advisor-booking-service/internal/api/handlers"
	"github.com/finplanner/advisor-booking-service/internal/api/middleware"
	createBooking "github.com/finplanner/advisor-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается ISO 8601"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotUnavailable    = "выбранный интервал времени уже занят"
	msgAdvisorNotFound    = "консультант не найден"
	msgPlanNotFound       = "финансовый план не найден"
	msgPlanNotOwned       = "финансовый план принадлежит другому пользователю"
	msgDateInPast         = "дата консультации в прошлом"
	msgInvalidDuration    = "некорректная длительность консультации"
	msgInvalidSessionType = "некорректный тип консультации"
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

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse appointment date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: user_id=%d, advisor_id=%d", userID, req.AdvisorID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrAdvisorNotFound):
			h.logger.Warn("POST /appointments - Advisor not found: advisor_id=%d", req.AdvisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, createBooking.ErrPlanNotFound):
			h.logger.Warn("POST /appointments - Plan not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, createBooking.ErrPlanNotOwned):
			h.logger.Warn("POST /appointments - Plan not owned: user_id=%d", userID)
			handlers.RespondForbidden(w, msgPlanNotOwned)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in past: user_id=%d, advisor_id=%d", userID, req.AdvisorID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			h.logger.Warn("POST /appointments - Invalid duration: user_id=%d, duration=%d", userID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidSessionType):
			h.logger.Warn("POST /appointments - Invalid session type: user_id=%d, type=%s", userID, req.SessionType)
			handlers.RespondBadRequest(w, msgInvalidSessionType)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, advisor_id=%d, error=%v",
				userID, req.AdvisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, user_id=%d, advisor_id=%d",
		result.ID, userID, req.AdvisorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
