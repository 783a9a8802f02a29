package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/finplanner/advisor-booking-service/internal/api/handlers"
	"github.com/finplanner/advisor-booking-service/internal/domain"
	getAvailableSlots "github.com/finplanner/advisor-booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidAdvisorID = "некорректный ID консультанта"
	msgInvalidDates     = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgInvalidRange     = "дата начала должна быть не позже даты конца"
	msgRangeTooWide     = "слишком широкий диапазон дат"
	msgAdvisorNotFound  = "консультант не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/advisors/{advisorId}/available-slots?startDate=...&endDate=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	advisorID, err := strconv.ParseInt(vars["advisorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/available-slots - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/available-slots - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/available-slots - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		AdvisorID: advisorID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrAdvisorNotFound):
			h.logger.Warn("GET /advisors/{id}/available-slots - Advisor not found: advisor_id=%d", advisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidRange):
			h.logger.Warn("GET /advisors/{id}/available-slots - Invalid range: advisor_id=%d", advisorID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailableSlots.ErrRangeTooWide):
			h.logger.Warn("GET /advisors/{id}/available-slots - Range too wide: advisor_id=%d", advisorID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /advisors/{id}/available-slots - Invalid input: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		default:
			h.logger.Error("GET /advisors/{id}/available-slots - Failed to get slots: advisor_id=%d, error=%v",
				advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /advisors/{id}/available-slots - Returned %d slots: advisor_id=%d",
		len(result.Slots), advisorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
