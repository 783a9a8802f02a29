package get_available_slots

import (
	"context"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// AdvisorRepository интерфейс репозитория советников
type AdvisorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Advisor, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// GetByAdvisorForRange получает окна, действующие в диапазоне дат
	GetByAdvisorForRange(ctx context.Context, advisorID int64, startDate, endDate time.Time) ([]*domain.AvailabilityWindow, error)
}

// AppointmentRepository интерфейс репозитория консультаций
type AppointmentRepository interface {
	// GetByAdvisorWithFilter получает консультации советника, пересекающие период
	GetByAdvisorWithFilter(ctx context.Context, filter domain.AdvisorAppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
