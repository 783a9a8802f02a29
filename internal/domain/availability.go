package domain

import (
	"time"

	"github.com/finplanner/advisor-booking-service/pkg/types"
)

// AvailabilityWindow окно доступности советника.
// Либо повторяется еженедельно (Recurring=true, активен DayOfWeek),
// либо действует в конкретную дату (Recurring=false, активен SpecificDate).
// Время начала и конца - локальное время советника (см. Advisor.Timezone).
type AvailabilityWindow struct {
	ID        int64
	AdvisorID int64

	// DayOfWeek день недели 1-7 (понедельник - воскресенье), значим при Recurring=true
	DayOfWeek int

	// SpecificDate конкретная дата окна, значима при Recurring=false
	SpecificDate *time.Time

	StartTime types.TimeString
	EndTime   types.TimeString
	Recurring bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo возвращает true, если окно действует в указанную дату
func (w *AvailabilityWindow) AppliesTo(date time.Time) bool {
	if w.Recurring {
		return ISOWeekday(date) == w.DayOfWeek
	}
	if w.SpecificDate == nil {
		return false
	}
	return sameDate(*w.SpecificDate, date)
}

// ISOWeekday возвращает день недели 1-7, где понедельник = 1
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
