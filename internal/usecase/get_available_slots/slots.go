package get_available_slots

import (
	"errors"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	"github.com/finplanner/advisor-booking-service/pkg/types"
)

// expandWindows разворачивает окна доступности в последовательность
// 30-минутных слотов-кандидатов по каждому дню диапазона [startDate, endDate].
//
// Для каждой даты берутся окна, действующие в этот день: повторяющиеся
// с совпадающим днём недели либо разовые с совпадающей датой. Окно
// нарезается подряд идущими шагами фиксированной длины; неполный хвост
// отбрасывается, окно уже одного шага не даёт ни одного слота.
//
// Пересекающиеся окна одного дня могут дать дублирующиеся слоты -
// дедупликация здесь не выполняется, проверка конфликтов работает
// послотно, поэтому дубликаты безвредны.
//
// Функция чистая: не обращается ни к БД, ни к часам.
func expandWindows(
	windows []*domain.AvailabilityWindow,
	startDate, endDate time.Time,
	loc *time.Location,
) ([]domain.CandidateSlot, error) {
	slots := make([]domain.CandidateSlot, 0)

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		for _, window := range windows {
			if !window.AppliesTo(date) {
				continue
			}

			daySlots, err := subdivideWindow(window, date, loc)
			if err != nil {
				return nil, err
			}
			slots = append(slots, daySlots...)
		}
	}

	return slots, nil
}

// subdivideWindow нарезает окно на слоты фиксированной длины в пределах одного дня
func subdivideWindow(window *domain.AvailabilityWindow, date time.Time, loc *time.Location) ([]domain.CandidateSlot, error) {
	slots := make([]domain.CandidateSlot, 0)

	current := window.StartTime
	for {
		slotEnd, err := current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			// Слот не помещается до полуночи - это неполный хвост окна
			if errors.Is(err, types.ErrOutOfDayRange) {
				break
			}
			return nil, err
		}
		// Неполный хвост окна не становится укороченным слотом
		if slotEnd.IsAfter(window.EndTime) {
			break
		}

		start, err := current.At(date, loc)
		if err != nil {
			return nil, err
		}

		slots = append(slots, domain.CandidateSlot{
			Date:      date,
			StartTime: current,
			EndTime:   slotEnd,
			Start:     start.UTC(),
			End:       start.Add(domain.SlotDurationMinutes * time.Minute).UTC(),
		})

		current = slotEnd
	}

	return slots, nil
}

// filterAvailable оставляет слоты без пересечений с активными консультациями.
// Пересечение полуинтервалов строгое: слот, заканчивающийся ровно в момент
// начала консультации, не конфликтует с ней.
func filterAvailable(slots []domain.CandidateSlot, appointments []*domain.Appointment) []domain.CandidateSlot {
	available := make([]domain.CandidateSlot, 0, len(slots))

	for _, slot := range slots {
		if !conflictsAny(&slot, appointments) {
			available = append(available, slot)
		}
	}

	return available
}

func conflictsAny(slot *domain.CandidateSlot, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if slot.ConflictsWith(appt) {
			return true
		}
	}
	return false
}
