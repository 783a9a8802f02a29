package create_appointment

import (
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	createBooking "github.com/finplanner/advisor-booking-service/internal/usecase/create_booking"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	AdvisorID       int64   `json:"advisorId"`
	AppointmentDate string  `json:"appointmentDate"` // "2026-03-02T09:00:00Z", UTC ISO 8601
	DurationMinutes int     `json:"durationMinutes"`
	SessionType     string  `json:"sessionType"`
	SharedPlanID    *int64  `json:"sharedPlanId,omitempty"`
	UserNotes       *string `json:"userNotes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	AdvisorID       int64   `json:"advisorId"`
	AppointmentDate string  `json:"appointmentDate"`
	DurationMinutes int     `json:"durationMinutes"`
	SessionType     string  `json:"sessionType"`
	Status          string  `json:"status"`
	MeetingLink     *string `json:"meetingLink,omitempty"`
	SharedPlanID    *int64  `json:"sharedPlanId,omitempty"`
	UserNotes       *string `json:"userNotes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	appointmentDate, err := time.Parse(time.RFC3339, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		AdvisorID:       r.AdvisorID,
		AppointmentDate: appointmentDate,
		DurationMinutes: r.DurationMinutes,
		SessionType:     domain.SessionType(r.SessionType),
		SharedPlanID:    r.SharedPlanID,
		UserNotes:       r.UserNotes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		AdvisorID:       resp.AdvisorID,
		AppointmentDate: resp.AppointmentDate.UTC().Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		SessionType:     resp.SessionType,
		Status:          resp.Status,
		MeetingLink:     resp.MeetingLink,
		SharedPlanID:    resp.SharedPlanID,
		UserNotes:       resp.UserNotes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
