package get_availability

import (
	"context"

	"github.com/finplanner/advisor-booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	ListWindows(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
