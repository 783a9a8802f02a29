package add_advisor_notes

import (
	"context"

	"github.com/finplanner/advisor-booking-service/internal/service/appointments/models"
)

type AppointmentService interface {
	AddAdvisorNotes(ctx context.Context, appointmentID int64, req *models.AdvisorNotesRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
