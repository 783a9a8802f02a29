package provisioning

import (
	"context"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	queue "github.com/finplanner/advisor-booking-service/internal/infra/queue/provisioning"
	"github.com/finplanner/advisor-booking-service/internal/integrations/calendarbridge"
)

// TaskQueue интерфейс очереди задач provisioning
type TaskQueue interface {
	Dequeue(ctx context.Context) (*queue.Task, error)
	Requeue(ctx context.Context, task *queue.Task) error
	Release(ctx context.Context, appointmentID int64) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	SetMeetingLink(ctx context.Context, id int64, link string) error
}

// CalendarClient интерфейс клиента шлюза календаря
type CalendarClient interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
	CreateEvent(ctx context.Context, appointment *domain.Appointment) (*calendarbridge.CreateEventResponse, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	SendMeetingLink(ctx context.Context, appointment *domain.Appointment) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
