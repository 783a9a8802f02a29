package create_booking

import (
	"context"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на консультации
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByAdvisorWithFilter(ctx context.Context, filter domain.AdvisorAppointmentsFilter) ([]*domain.Appointment, error)
}

// AdvisorRepository интерфейс репозитория консультантов
type AdvisorRepository interface {
	GetByID(ctx context.Context, advisorID int64) (*domain.Advisor, error)
}

// PlanRepository интерфейс репозитория финансовых планов
type PlanRepository interface {
	GetByID(ctx context.Context, planID int64) (*domain.PlanRef, error)
}

// ProvisioningQueue интерфейс очереди задач на создание встречи
type ProvisioningQueue interface {
	Enqueue(ctx context.Context, appointmentID, userID int64) error
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	SendConfirmation(ctx context.Context, appointment *domain.Appointment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
