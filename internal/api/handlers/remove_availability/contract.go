package remove_availability

import (
	"context"

	"github.com/finplanner/advisor-booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	RemoveWindow(ctx context.Context, req *models.RemoveWindowRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
