package models

import (
	"errors"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID             int64   `json:"userId"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// AdvisorNotesRequest запрос на добавление заметок консультанта
type AdvisorNotesRequest struct {
	UserID int64  `json:"userId"`
	Notes  string `json:"notes"`
}

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetAdvisorAppointmentsRequest запрос на получение записей консультанта
type GetAdvisorAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	AdvisorID       int64      `json:"advisorId"`
	RangeStart      *time.Time `json:"rangeStart,omitempty"`      // Начало периода (опционально)
	RangeEnd        *time.Time `json:"rangeEnd,omitempty"`        // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAdvisorAppointmentsRequest) ToDomainFilter() (domain.AdvisorAppointmentsFilter, error) {
	filter := domain.AdvisorAppointmentsFilter{
		AdvisorID:       r.AdvisorID,
		RangeStart:      r.RangeStart,
		RangeEnd:        r.RangeEnd,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	AdvisorID       int64     `json:"advisorId"`
	AppointmentDate time.Time `json:"appointmentDate"` // UTC, ISO 8601
	DurationMinutes int       `json:"durationMinutes"`
	SessionType     string    `json:"sessionType"`
	Status          string    `json:"status"`
	BookingDate     time.Time `json:"bookingDate"`

	MeetingLink  *string `json:"meetingLink,omitempty"`
	SharedPlanID *int64  `json:"sharedPlanId,omitempty"`
	UserNotes    *string `json:"userNotes,omitempty"`
	AdvisorNotes *string `json:"advisorNotes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		AdvisorID:       a.AdvisorID,
		AppointmentDate: a.AppointmentDate,
		DurationMinutes: a.DurationMinutes,
		SessionType:     string(a.SessionType),
		Status:          string(a.Status),
		BookingDate:     a.BookingDate,
		MeetingLink:     a.MeetingLink,
		SharedPlanID:    a.SharedPlanID,
		UserNotes:       a.UserNotes,
		AdvisorNotes:    a.AdvisorNotes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.CancellationReason != nil {
		resp.CancellationReason = a.CancellationReason
	}
	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		if resp := FromDomainAppointment(a); resp != nil {
			result.Appointments = append(result.Appointments, *resp)
		}
	}
	return result
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s, ok := domain.ValidStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
