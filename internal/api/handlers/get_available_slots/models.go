package get_available_slots

import (
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	getAvailableSlots "github.com/finplanner/advisor-booking-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	Date      string `json:"date"`      // "2026-03-02", дата в таймзоне консультанта
	StartTime string `json:"startTime"` // "09:00", локальное время консультанта
	EndTime   string `json:"endTime"`   // "09:30"
	Start     string `json:"start"`     // Абсолютный момент начала, UTC, ISO 8601
	End       string `json:"end"`       // Абсолютный момент конца, UTC, ISO 8601
}

// AvailableSlotsResponse HTTP ответ со свободными слотами
type AvailableSlotsResponse struct {
	AdvisorID int64          `json:"advisorId"`
	Timezone  string         `json:"timezone"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Start:     s.Start.UTC().Format(time.RFC3339),
			End:       s.End.UTC().Format(time.RFC3339),
		})
	}

	return &AvailableSlotsResponse{
		AdvisorID: resp.AdvisorID,
		Timezone:  resp.Timezone,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Slots:     slots,
	}
}
