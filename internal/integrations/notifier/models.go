package notifier

import "time"

// Типы уведомлений
const (
	KindConfirmation = "APPOINTMENT_CONFIRMATION"
	KindCancellation = "APPOINTMENT_CANCELLATION"
	KindMeetingLink  = "MEETING_LINK"
)

// Notification модель уведомления для сервиса доставки
type Notification struct {
	Kind            string    `json:"kind"`
	UserID          int64     `json:"userId"`
	AdvisorID       int64     `json:"advisorId"`
	AppointmentID   int64     `json:"appointmentId"`
	AppointmentDate time.Time `json:"appointmentDate"` // UTC
	DurationMinutes int       `json:"durationMinutes"`
	SessionType     string    `json:"sessionType"`
	MeetingLink     *string   `json:"meetingLink,omitempty"`
}
