package calendarbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// Пространство имён для детерминированных request ID: одна и та же запись
// при любом ретрае даёт один и тот же ID, провайдер не создаёт дубликатов.
var requestIDNamespace = uuid.MustParse("7a8c2f90-4b31-4c86-9e5d-1f6a2b3c4d5e")

// Client клиент шлюза календаря: проверка OAuth-статуса и создание
// событий со ссылками на встречи
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза календаря
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// IsAuthorized проверяет, авторизовал ли пользователь доступ к своему календарю
func (c *Client) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	url := fmt.Sprintf("%s/internal/users/%d/auth-status", c.cfg.BaseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: failed to execute request: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		// Пользователь неизвестен шлюзу - авторизации нет
		return false, nil
	case resp.StatusCode >= 500:
		return false, fmt.Errorf("%w: status code %d", ErrProvider, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var status AuthStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return status.Authorized, nil
}

// CreateEvent создаёт событие календаря для записи и возвращает ссылку на встречу.
// Request ID детерминирован по ID записи: ретраи не плодят события.
func (c *Client) CreateEvent(ctx context.Context, appointment *domain.Appointment) (*CreateEventResponse, error) {
	payload := CreateEventRequest{
		RequestID:   RequestIDFor(appointment.ID),
		UserID:      appointment.UserID,
		Summary:     fmt.Sprintf("%s: consultation", c.cfg.ApplicationName),
		Description: fmt.Sprintf("Session type: %s", appointment.SessionType),
		StartTime:   appointment.AppointmentDate.UTC(),
		EndTime:     appointment.EndDate().UTC(),
		Timezone:    c.cfg.DefaultTimezone,
		Application: c.cfg.ApplicationName,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/events", c.cfg.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	c.log.Info("CreateEvent: appointment id=%d, status=%d, took=%s",
		appointment.ID, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: user id=%d", ErrNotAuthorized, appointment.UserID)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status code %d", ErrProvider, resp.StatusCode)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status code %d: %s", ErrUnrecoverable, resp.StatusCode, string(respBody))
	}

	var event CreateEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if event.MeetingLink == "" {
		return nil, fmt.Errorf("%w: empty meeting link in response", ErrInvalidResponse)
	}

	return &event, nil
}

// RequestIDFor возвращает детерминированный request ID для записи
func RequestIDFor(appointmentID int64) string {
	return uuid.NewSHA1(requestIDNamespace, []byte(fmt.Sprintf("appointment:%d", appointmentID))).String()
}
