package get_available_slots

import (
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	AdvisorID int64     // ID советника
	StartDate time.Time // Начало диапазона (включительно, без времени)
	EndDate   time.Time // Конец диапазона (включительно, без времени)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	AdvisorID int64
	Timezone  string // Таймзона советника, в которой заданы времена слотов
	StartDate time.Time
	EndDate   time.Time
	Slots     []domain.CandidateSlot
}
