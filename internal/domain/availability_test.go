package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finplanner/advisor-booking-service/pkg/types"
)

func TestISOWeekday(t *testing.T) {
	// 2026-03-16 - понедельник
	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		assert.Equal(t, i+1, ISOWeekday(monday.AddDate(0, 0, i)))
	}
}

func TestAvailabilityWindow_AppliesTo_Recurring(t *testing.T) {
	w := &AvailabilityWindow{
		AdvisorID: 1,
		DayOfWeek: 1, // понедельник
		StartTime: types.TimeString("09:00"),
		EndTime:   types.TimeString("17:00"),
		Recurring: true,
	}

	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	assert.True(t, w.AppliesTo(monday))
	assert.True(t, w.AppliesTo(monday.AddDate(0, 0, 7)))
	assert.False(t, w.AppliesTo(monday.AddDate(0, 0, 1)))
	assert.False(t, w.AppliesTo(monday.AddDate(0, 0, 6)))
}

func TestAvailabilityWindow_AppliesTo_OneOff(t *testing.T) {
	date := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
	w := &AvailabilityWindow{
		AdvisorID:    1,
		SpecificDate: &date,
		StartTime:    types.TimeString("10:00"),
		EndTime:      types.TimeString("12:00"),
		Recurring:    false,
	}

	assert.True(t, w.AppliesTo(date))
	// Время суток в сравнении дат не участвует
	assert.True(t, w.AppliesTo(date.Add(15*time.Hour)))
	assert.False(t, w.AppliesTo(date.AddDate(0, 0, 1)))
	assert.False(t, w.AppliesTo(date.AddDate(0, 0, 7)))
}

func TestAvailabilityWindow_AppliesTo_OneOffWithoutDate(t *testing.T) {
	w := &AvailabilityWindow{AdvisorID: 1, Recurring: false}
	assert.False(t, w.AppliesTo(time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)))
}

func TestCandidateSlot_ConflictsWith(t *testing.T) {
	slot := &CandidateSlot{
		Start: time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 16, 10, 30, 0, 0, time.UTC),
	}

	overlapping := newAppointment(StatusConfirmed) // [10:00, 10:30)
	assert.True(t, slot.ConflictsWith(overlapping))

	// Отменённая консультация слот не занимает
	cancelled := newAppointment(StatusCancelled)
	assert.False(t, slot.ConflictsWith(cancelled))

	// Соприкасающиеся границы конфликтом не считаются
	touching := newAppointment(StatusConfirmed)
	touching.AppointmentDate = time.Date(2026, 3, 16, 10, 30, 0, 0, time.UTC)
	assert.False(t, slot.ConflictsWith(touching))
}
