package create_booking

import (
	"fmt"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.AdvisorID <= 0 {
		return fmt.Errorf("%w: advisorID must be positive", ErrInvalidInput)
	}

	if req.AppointmentDate.IsZero() {
		return fmt.Errorf("%w: appointmentDate is required", ErrInvalidInput)
	}

	if err := validateDuration(req.DurationMinutes); err != nil {
		return err
	}

	if _, ok := domain.ValidSessionType(string(req.SessionType)); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSessionType, req.SessionType)
	}

	if req.SharedPlanID != nil && *req.SharedPlanID <= 0 {
		return fmt.Errorf("%w: sharedPlanID must be positive", ErrInvalidInput)
	}

	if req.UserNotes != nil && len(*req.UserNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: userNotes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDuration проверяет длительность: в допустимых границах и кратна слоту
func validateDuration(minutes int) error {
	if minutes < domain.MinDurationMinutes || minutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if minutes%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes",
			ErrInvalidDuration, domain.SlotDurationMinutes)
	}
	return nil
}

// validateDate проверяет, что начало консультации не в прошлом
func validateDate(appointmentDate, now time.Time) error {
	if appointmentDate.Before(now) {
		return ErrInvalidDate
	}
	return nil
}

// checkConflicts возвращает результат проверки интервала [start, end)
// на пересечение с активными записями. Граничные случаи (конец одной
// записи совпадает с началом другой) конфликтом не считаются.
func checkConflicts(start, end time.Time, appointments []*domain.Appointment) CheckResult {
	var conflicts []*domain.Appointment
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if appt.Overlaps(start, end) {
			conflicts = append(conflicts, appt)
		}
	}
	return CheckResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}
}
