package complete_oauth

import (
	"net/http"

	"github.com/finplanner/advisor-booking-service/internal/api/handlers"
	"github.com/finplanner/advisor-booking-service/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

// EnqueuedResponse ответ с количеством поставленных задач
type EnqueuedResponse struct {
	Enqueued int `json:"enqueued"`
}

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

// Handle POST /api/v1/oauth/google/complete
// Пользователь завершил OAuth-авторизацию календаря: переигрываем выдачу
// ссылок для его активных записей без ссылки.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /oauth/google/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	enqueued, err := h.service.RetryProvisioning(r.Context(), userID)
	if err != nil {
		h.logger.Error("POST /oauth/google/complete - Failed to retry provisioning: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /oauth/google/complete - Provisioning retried: user_id=%d, enqueued=%d", userID, enqueued)
	handlers.RespondJSON(w, http.StatusAccepted, EnqueuedResponse{Enqueued: enqueued})
}
