package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// Client клиент сервиса уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendConfirmation отправляет уведомление о подтверждении записи
func (c *Client) SendConfirmation(ctx context.Context, appointment *domain.Appointment) error {
	return c.send(ctx, buildNotification(KindConfirmation, appointment))
}

// SendCancellation отправляет уведомление об отмене записи
func (c *Client) SendCancellation(ctx context.Context, appointment *domain.Appointment) error {
	return c.send(ctx, buildNotification(KindCancellation, appointment))
}

// SendMeetingLink отправляет уведомление с готовой ссылкой на встречу
func (c *Client) SendMeetingLink(ctx context.Context, appointment *domain.Appointment) error {
	return c.send(ctx, buildNotification(KindMeetingLink, appointment))
}

func (c *Client) send(ctx context.Context, notification *Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status code %d: %s", ErrSendFailed, resp.StatusCode, string(respBody))
	}

	c.log.Info("send: delivered %s notification for appointment id=%d", notification.Kind, notification.AppointmentID)
	return nil
}

func buildNotification(kind string, appointment *domain.Appointment) *Notification {
	return &Notification{
		Kind:            kind,
		UserID:          appointment.UserID,
		AdvisorID:       appointment.AdvisorID,
		AppointmentID:   appointment.ID,
		AppointmentDate: appointment.AppointmentDate,
		DurationMinutes: appointment.DurationMinutes,
		SessionType:     string(appointment.SessionType),
		MeetingLink:     appointment.MeetingLink,
	}
}
