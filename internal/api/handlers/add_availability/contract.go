package add_availability

import (
	"context"

	"github.com/finplanner/advisor-booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	AddWindow(ctx context.Context, req *models.AddWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
