package get_available_slots

import (
	"fmt"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AdvisorID <= 0 {
		return fmt.Errorf("%w: advisorID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return ErrInvalidRange
	}

	// Диапазон включительный: [StartDate, EndDate]
	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days > domain.MaxQueryRangeDays {
		return fmt.Errorf("%w: at most %d days per query", ErrRangeTooWide, domain.MaxQueryRangeDays)
	}

	return nil
}
