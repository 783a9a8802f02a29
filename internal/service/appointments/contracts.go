package appointments

import (
	"context"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на консультации
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Appointment, error)
	GetByAdvisorWithFilter(ctx context.Context, filter domain.AdvisorAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	SetAdvisorNotes(ctx context.Context, id int64, notes string) error
}

// AdvisorRepository интерфейс репозитория консультантов
type AdvisorRepository interface {
	GetByID(ctx context.Context, advisorID int64) (*domain.Advisor, error)
}

// ProvisioningQueue интерфейс очереди задач на создание встречи
type ProvisioningQueue interface {
	Enqueue(ctx context.Context, appointmentID, userID int64) error
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	SendConfirmation(ctx context.Context, appointment *domain.Appointment) error
	SendCancellation(ctx context.Context, appointment *domain.Appointment) error
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
