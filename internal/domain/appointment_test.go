package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finplanner/advisor-booking-service/pkg/ptr"
)

func newAppointment(status AppointmentStatus) *Appointment {
	return &Appointment{
		ID:              1,
		UserID:          10,
		AdvisorID:       20,
		AppointmentDate: time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		SessionType:     SessionStandard,
		Status:          status,
	}
}

func TestAppointment_EndDate(t *testing.T) {
	a := newAppointment(StatusConfirmed)
	a.DurationMinutes = 90

	want := time.Date(2026, 3, 16, 11, 30, 0, 0, time.UTC)
	assert.True(t, a.EndDate().Equal(want))
}

func TestAppointment_Overlaps(t *testing.T) {
	// Консультация занимает [10:00, 10:30)
	a := newAppointment(StatusConfirmed)

	day := func(h, m int) time.Time {
		return time.Date(2026, 3, 16, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical interval", day(10, 0), day(10, 30), true},
		{"contained interval", day(10, 10), day(10, 20), true},
		{"containing interval", day(9, 0), day(12, 0), true},
		{"partial overlap left", day(9, 45), day(10, 15), true},
		{"partial overlap right", day(10, 15), day(10, 45), true},
		{"touching at start", day(9, 30), day(10, 0), false},
		{"touching at end", day(10, 30), day(11, 0), false},
		{"fully before", day(8, 0), day(9, 0), false},
		{"fully after", day(11, 0), day(12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.start, tt.end))
		})
	}
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusPending, false},

		// Повторное подтверждение разрешено (переигровка provisioning)
		{StatusConfirmed, StatusConfirmed, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},

		// Конечные статусы не покидаются
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tt := range tests {
		a := newAppointment(tt.from)
		assert.Equal(t, tt.want, a.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	assert.True(t, newAppointment(StatusPending).CanBeCancelled())
	assert.True(t, newAppointment(StatusConfirmed).CanBeCancelled())
	assert.False(t, newAppointment(StatusCancelled).CanBeCancelled())
	assert.False(t, newAppointment(StatusCompleted).CanBeCancelled())
}

func TestAppointment_IsActive(t *testing.T) {
	assert.True(t, newAppointment(StatusPending).IsActive())
	assert.True(t, newAppointment(StatusConfirmed).IsActive())
	assert.True(t, newAppointment(StatusCompleted).IsActive())
	assert.False(t, newAppointment(StatusCancelled).IsActive())
}

func TestAppointment_HasEnded(t *testing.T) {
	a := newAppointment(StatusConfirmed) // [10:00, 10:30)
	end := a.EndDate()

	assert.False(t, a.HasEnded(end.Add(-time.Minute)))
	// Момент окончания уже считается прошедшим
	assert.True(t, a.HasEnded(end))
	assert.True(t, a.HasEnded(end.Add(time.Hour)))
}

func TestAppointment_HasMeetingLink(t *testing.T) {
	a := newAppointment(StatusConfirmed)
	assert.False(t, a.HasMeetingLink())

	a.MeetingLink = ptr.Ptr("")
	assert.False(t, a.HasMeetingLink())

	a.MeetingLink = ptr.Ptr("https://meet.example.com/abc")
	assert.True(t, a.HasMeetingLink())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "CONFIRMED", "CANCELLED", "COMPLETED"} {
		got, ok := ValidStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, AppointmentStatus(s), got)
	}

	_, ok := ValidStatus("confirmed")
	assert.False(t, ok)

	_, ok = ValidStatus("ARCHIVED")
	assert.False(t, ok)
}

func TestValidSessionType(t *testing.T) {
	for _, s := range []string{"INITIAL_CONSULTATION", "STANDARD_SESSION", "FOLLOWUP_SESSION", "PLAN_REVIEW"} {
		got, ok := ValidSessionType(s)
		assert.True(t, ok, s)
		assert.Equal(t, SessionType(s), got)
	}

	_, ok := ValidSessionType("WORKSHOP")
	assert.False(t, ok)
}
