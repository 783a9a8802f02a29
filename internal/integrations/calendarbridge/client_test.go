package calendarbridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:         baseURL,
		Timeout:         2 * time.Second,
		ApplicationName: "FinPlanner",
		DefaultTimezone: "UTC",
	}, noopLogger{})
}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              7,
		UserID:          10,
		AdvisorID:       1,
		AppointmentDate: time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		SessionType:     domain.SessionStandard,
		Status:          domain.StatusConfirmed,
	}
}

func TestIsAuthorized(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    bool
		wantErr error
	}{
		{"authorized", http.StatusOK, `{"authorized":true}`, true, nil},
		{"not authorized", http.StatusOK, `{"authorized":false}`, false, nil},
		{"unknown user", http.StatusNotFound, ``, false, nil},
		{"provider down", http.StatusInternalServerError, ``, false, ErrProvider},
		{"unexpected status", http.StatusTeapot, ``, false, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/internal/users/10/auth-status", r.URL.Path)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := newTestClient(srv.URL).IsAuthorized(context.Background(), 10)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateEvent_Success(t *testing.T) {
	var received CreateEventRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/events", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateEventResponse{
			EventID:     "evt-1",
			MeetingLink: "https://meet.example.com/abc",
		})
	}))
	defer srv.Close()

	appointment := testAppointment()
	event, err := newTestClient(srv.URL).CreateEvent(context.Background(), appointment)
	require.NoError(t, err)

	assert.Equal(t, "https://meet.example.com/abc", event.MeetingLink)
	assert.Equal(t, RequestIDFor(appointment.ID), received.RequestID)
	assert.True(t, received.StartTime.Equal(appointment.AppointmentDate))
	assert.True(t, received.EndTime.Equal(appointment.EndDate()))
	assert.Equal(t, "FinPlanner", received.Application)
}

func TestCreateEvent_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"authorization revoked", http.StatusUnauthorized, ErrNotAuthorized},
		{"forbidden", http.StatusForbidden, ErrNotAuthorized},
		{"provider down", http.StatusInternalServerError, ErrProvider},
		{"bad gateway", http.StatusBadGateway, ErrProvider},
		{"rejected request", http.StatusUnprocessableEntity, ErrUnrecoverable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).CreateEvent(context.Background(), testAppointment())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateEvent_EmptyMeetingLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CreateEventResponse{EventID: "evt-1"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateEvent(context.Background(), testAppointment())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestCreateEvent_TransportError(t *testing.T) {
	// Закрытый сервер - транспортная ошибка считается временной
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).CreateEvent(context.Background(), testAppointment())
	assert.ErrorIs(t, err, ErrProvider)
}

func TestRequestIDFor_Deterministic(t *testing.T) {
	// Один и тот же ID записи всегда даёт один и тот же request ID
	assert.Equal(t, RequestIDFor(7), RequestIDFor(7))
	assert.NotEqual(t, RequestIDFor(7), RequestIDFor(8))
}
