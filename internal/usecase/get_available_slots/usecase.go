package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	storageAdvisor "github.com/finplanner/advisor-booking-service/internal/infra/storage/advisor"
)

// UseCase расчёта свободных слотов консультанта в заданном диапазоне дат.
type UseCase struct {
	advisorRepo      AdvisorRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	logger           Logger
}

func New(
	advisorRepo AdvisorRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		advisorRepo:      advisorRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		logger:           logger,
	}
}

// Execute возвращает все свободные 30-минутные слоты консультанта
// в диапазоне [StartDate, EndDate] (обе границы включительно).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Проверяем, что консультант существует
	advisor, err := uc.advisorRepo.GetByID(ctx, req.AdvisorID)
	if err != nil {
		if errors.Is(err, storageAdvisor.ErrAdvisorNotFound) {
			return nil, fmt.Errorf("%w: advisorID=%d", ErrAdvisorNotFound, req.AdvisorID)
		}
		uc.logger.Error("[GetAvailableSlots] Failed to get advisor: advisorID=%d, error=%v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: failed to get advisor: %v", ErrInternal, err)
	}

	// 3. Таймзона консультанта: расписание задано в его локальном времени
	loc, err := advisor.Location()
	if err != nil {
		uc.logger.Error("[GetAvailableSlots] Invalid advisor timezone: advisorID=%d, timezone=%s, error=%v",
			advisor.ID, advisor.Timezone, err)
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, advisor.Timezone)
	}

	// 4. Загружаем окна доступности, покрывающие диапазон
	windows, err := uc.availabilityRepo.GetByAdvisorForRange(ctx, req.AdvisorID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("[GetAvailableSlots] Failed to get availability windows: advisorID=%d, error=%v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 5. Загружаем активные записи с запасом по краям диапазона:
	// запись, начавшаяся до StartDate, может длиться до ConflictSlackMinutes
	// и пересекать первый слот.
	rangeStart := startOfDayIn(req.StartDate, loc).Add(-time.Duration(domain.ConflictSlackMinutes) * time.Minute)
	rangeEnd := startOfDayIn(req.EndDate, loc).Add(24 * time.Hour).Add(time.Duration(domain.ConflictSlackMinutes) * time.Minute)

	appointments, err := uc.appointmentRepo.GetByAdvisorWithFilter(ctx, domain.AdvisorAppointmentsFilter{
		AdvisorID:  req.AdvisorID,
		RangeStart: &rangeStart,
		RangeEnd:   &rangeEnd,
	})
	if err != nil {
		uc.logger.Error("[GetAvailableSlots] Failed to get appointments: advisorID=%d, error=%v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Разворачиваем окна в слоты и отбрасываем занятые
	candidates, err := expandWindows(windows, req.StartDate, req.EndDate, loc)
	if err != nil {
		uc.logger.Error("[GetAvailableSlots] Failed to expand windows: advisorID=%d, error=%v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: failed to expand windows: %v", ErrInternal, err)
	}
	free := filterAvailable(candidates, appointments)

	uc.logger.Info("[GetAvailableSlots] Computed slots: advisorID=%d, windows=%d, candidates=%d, free=%d",
		req.AdvisorID, len(windows), len(candidates), len(free))

	return &Response{
		AdvisorID: advisor.ID,
		Timezone:  advisor.Timezone,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Slots:     free,
	}, nil
}

// startOfDayIn возвращает полночь даты date в таймзоне loc.
func startOfDayIn(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}
