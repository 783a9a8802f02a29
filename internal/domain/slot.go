package domain

import (
	"time"

	"github.com/finplanner/advisor-booking-service/pkg/types"
)

// CandidateSlot кандидат на бронирование - 30-минутный подынтервал окна
// доступности. Не персистится, пересчитывается на каждый запрос.
// Start и End - абсолютные моменты в UTC, StartTime/EndTime - локальное
// время советника для отображения.
type CandidateSlot struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Start     time.Time
	End       time.Time
}

// ConflictsWith возвращает true, если слот пересекается с активной консультацией
func (s *CandidateSlot) ConflictsWith(appt *Appointment) bool {
	if !appt.IsActive() {
		return false
	}
	return appt.Overlaps(s.Start, s.End)
}
