package calendarbridge

import "time"

// Config параметры клиента шлюза календаря.
// Явный value object: всё, что раньше подтягивалось из окружения,
// передаётся при создании клиента.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	ApplicationName string
	DefaultTimezone string
}

// CreateEventRequest запрос на создание события календаря со встречей
type CreateEventRequest struct {
	RequestID   string    `json:"requestId"` // Детерминированный ID для идемпотентности на стороне провайдера
	UserID      int64     `json:"userId"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"` // UTC
	EndTime     time.Time `json:"endTime"`   // UTC
	Timezone    string    `json:"timezone"`
	Application string    `json:"application"`
}

// CreateEventResponse ответ с созданным событием
type CreateEventResponse struct {
	EventID     string `json:"eventId"`
	MeetingLink string `json:"meetingLink"`
}

// AuthStatusResponse ответ о статусе OAuth-авторизации пользователя
type AuthStatusResponse struct {
	Authorized bool `json:"authorized"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
