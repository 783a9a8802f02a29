package domain

import "time"

// AppointmentStatus статус консультации
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// SessionType тип консультационной сессии
type SessionType string

const (
	SessionInitialConsultation SessionType = "INITIAL_CONSULTATION"
	SessionStandard            SessionType = "STANDARD_SESSION"
	SessionFollowup            SessionType = "FOLLOWUP_SESSION"
	SessionPlanReview          SessionType = "PLAN_REVIEW"
)

// Appointment консультация между пользователем и советником.
// AppointmentDate хранится в UTC; инвариант - полуинтервалы
// [AppointmentDate, AppointmentDate+Duration) активных консультаций
// одного советника не пересекаются.
type Appointment struct {
	ID              int64
	UserID          int64
	AdvisorID       int64
	AppointmentDate time.Time
	DurationMinutes int
	SessionType     SessionType
	Status          AppointmentStatus
	BookingDate     time.Time

	// MeetingLink заполняется асинхронно воркером провижининга
	MeetingLink *string

	// SharedPlanID ссылка на финансовый план, расшаренный советнику (опционально)
	SharedPlanID *int64

	UserNotes    *string
	AdvisorNotes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndDate возвращает момент окончания консультации
func (a *Appointment) EndDate() time.Time {
	return a.AppointmentDate.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsActive возвращает true, если консультация занимает слот в календаре.
// Отменённые консультации освобождают слот немедленно.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal возвращает true для конечных статусов
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// CanBeCancelled возвращает true, если консультацию можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// HasEnded возвращает true, если время консультации уже прошло
func (a *Appointment) HasEnded(now time.Time) bool {
	return !a.EndDate().After(now)
}

// HasMeetingLink возвращает true, если ссылка на встречу уже выдана
func (a *Appointment) HasMeetingLink() bool {
	return a.MeetingLink != nil && *a.MeetingLink != ""
}

// Overlaps проверяет пересечение с интервалом [start, end) по строгому
// полуинтервальному тесту: соприкасающиеся границы не считаются конфликтом
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.AppointmentDate.Before(end) && start.Before(a.EndDate())
}

// CanTransitionTo проверяет допустимость перехода статуса.
// CONFIRMED -> CONFIRMED разрешён повторно (досоздание ссылки на встречу),
// конечные статусы не покидаются.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusCompleted
	case StatusConfirmed:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusCompleted
	case StatusCancelled, StatusCompleted:
		return false
	default:
		return false
	}
}

// ValidStatus проверяет, что строка является известным статусом
func ValidStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}

// ValidSessionType проверяет, что строка является известным типом сессии
func ValidSessionType(s string) (SessionType, bool) {
	switch SessionType(s) {
	case SessionInitialConsultation, SessionStandard, SessionFollowup, SessionPlanReview:
		return SessionType(s), true
	default:
		return "", false
	}
}

// AdvisorAppointmentsFilter фильтр для выборки консультаций советника
type AdvisorAppointmentsFilter struct {
	AdvisorID       int64              // Обязательный параметр
	RangeStart      *time.Time         // Начало периода по времени консультации (опционально)
	RangeEnd        *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые консультации
}
