package availability

import (
	"context"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	Delete(ctx context.Context, advisorID, windowID int64) error
	GetByAdvisor(ctx context.Context, advisorID int64) ([]*domain.AvailabilityWindow, error)
}

// AdvisorRepository интерфейс репозитория консультантов
type AdvisorRepository interface {
	GetByID(ctx context.Context, advisorID int64) (*domain.Advisor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
