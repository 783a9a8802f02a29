package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	storageAdvisor "github.com/finplanner/advisor-booking-service/internal/infra/storage/advisor"
	"github.com/finplanner/advisor-booking-service/pkg/types"
)

// Фейки зависимостей

type fakeAdvisorRepo struct {
	advisor *domain.Advisor
	err     error
}

func (f *fakeAdvisorRepo) GetByID(ctx context.Context, id int64) (*domain.Advisor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.advisor, nil
}

type fakeAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
	err     error
}

func (f *fakeAvailabilityRepo) GetByAdvisorForRange(ctx context.Context, advisorID int64, startDate, endDate time.Time) ([]*domain.AvailabilityWindow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.windows, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	lastFilter   domain.AdvisorAppointmentsFilter
	err          error
}

func (f *fakeAppointmentRepo) GetByAdvisorWithFilter(ctx context.Context, filter domain.AdvisorAppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Вспомогательные конструкторы

func utcAdvisor() *domain.Advisor {
	return &domain.Advisor{ID: 1, UserID: 100, DisplayName: "Test Advisor", Timezone: "UTC"}
}

func mondayWindow(start, end string) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		ID:        1,
		AdvisorID: 1,
		DayOfWeek: 1,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Recurring: true,
	}
}

func bookedAt(start time.Time, minutes int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		UserID:          10,
		AdvisorID:       1,
		AppointmentDate: start,
		DurationMinutes: minutes,
		Status:          status,
		SessionType:     domain.SessionStandard,
	}
}

func newTestUseCase(advisor *fakeAdvisorRepo, avail *fakeAvailabilityRepo, appts *fakeAppointmentRepo) *UseCase {
	return New(advisor, avail, appts, noopLogger{})
}

// 2026-03-16 - понедельник
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func TestExecute_SingleWindowNoBookings(t *testing.T) {
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("09:00", "11:00")}},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	// Окно 09:00-11:00 даёт четыре 30-минутных слота
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[0].EndTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[3].StartTime)
	assert.True(t, resp.Slots[0].Start.Equal(monday.Add(9*time.Hour)))
	assert.Equal(t, "UTC", resp.Timezone)
}

func TestExecute_RecurringWindowAcrossTwoWeeks(t *testing.T) {
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("09:00", "11:00")}},
		&fakeAppointmentRepo{},
	)

	// Диапазон покрывает два понедельника
	resp, err := uc.Execute(context.Background(), &Request{
		AdvisorID: 1,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 8)
	assert.True(t, resp.Slots[4].Start.Equal(monday.AddDate(0, 0, 7).Add(9*time.Hour)))
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
	// Занято 09:30-10:00, свободными остаются 09:00, 10:00 и 10:30
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("09:00", "11:00")}},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			bookedAt(monday.Add(9*time.Hour+30*time.Minute), 30, domain.StatusConfirmed),
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[2].StartTime)
}

func TestExecute_TouchingAppointmentDoesNotConflict(t *testing.T) {
	// Консультация 08:30-09:00 соприкасается с первым слотом, но не пересекает его
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("09:00", "10:00")}},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			bookedAt(monday.Add(8*time.Hour+30*time.Minute), 30, domain.StatusConfirmed),
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("09:00", "10:00")}},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			bookedAt(monday.Add(9*time.Hour), 30, domain.StatusCancelled),
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_LongAppointmentBlocksSeveralSlots(t *testing.T) {
	// Консультация на 120 минут перекрывает все четыре слота окна
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("09:00", "11:00")}},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			bookedAt(monday.Add(9*time.Hour), 120, domain.StatusConfirmed),
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_WindowNarrowerThanSlot(t *testing.T) {
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("09:00", "09:20")}},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PartialTailDiscarded(t *testing.T) {
	// Окно 09:00-10:15: хвост в 15 минут не становится слотом
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("09:00", "10:15")}},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].EndTime)
}

func TestExecute_WindowEndingBeforeMidnight(t *testing.T) {
	// Окно 22:00-23:59: последний полный слот - 23:00-23:30,
	// хвост 23:30-23:59 короче шага и отбрасывается
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("22:00", "23:59")}},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("23:00"), resp.Slots[2].StartTime)
	assert.Equal(t, types.TimeString("23:30"), resp.Slots[2].EndTime)
	assert.True(t, resp.Slots[2].End.Equal(monday.Add(23*time.Hour+30*time.Minute)))
}

func TestExecute_NarrowWindowAtMidnight(t *testing.T) {
	// Окно 23:40-23:59 уже одного шага и упирается в полночь - ноль слотов
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("23:40", "23:59")}},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OneOffWindow(t *testing.T) {
	date := monday.AddDate(0, 0, 2) // среда
	window := &domain.AvailabilityWindow{
		ID:           2,
		AdvisorID:    1,
		SpecificDate: &date,
		StartTime:    types.TimeString("14:00"),
		EndTime:      types.TimeString("15:00"),
		Recurring:    false,
	}

	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{window}},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		AdvisorID: 1,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 6),
	})
	require.NoError(t, err)

	// Окно действует только в свою дату
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].Date.Equal(date))
}

func TestExecute_AdvisorTimezone(t *testing.T) {
	// Расписание задано в таймзоне советника: 09:00 в Берлине зимой - это 08:00 UTC
	advisor := utcAdvisor()
	advisor.Timezone = "Europe/Berlin"

	// 2026-01-12 - понедельник вне летнего времени
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: advisor},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow("09:00", "09:30")}},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: day, EndDate: day})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.True(t, resp.Slots[0].Start.Equal(day.Add(8*time.Hour)))
	assert.Equal(t, "Europe/Berlin", resp.Timezone)
}

func TestExecute_ConflictLookupUsesSlack(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{},
		appts,
	)

	_, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	// Выборка конфликтов расширена на максимальную длительность консультации
	require.NotNil(t, appts.lastFilter.RangeStart)
	require.NotNil(t, appts.lastFilter.RangeEnd)
	assert.True(t, appts.lastFilter.RangeStart.Equal(monday.Add(-domain.ConflictSlackMinutes*time.Minute)))
	assert.True(t, appts.lastFilter.RangeEnd.Equal(monday.Add(24*time.Hour).Add(domain.ConflictSlackMinutes*time.Minute)))
}

func TestExecute_AdvisorNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeAdvisorRepo{err: storageAdvisor.ErrAdvisorNotFound},
		&fakeAvailabilityRepo{},
		&fakeAppointmentRepo{},
	)

	_, err := uc.Execute(context.Background(), &Request{AdvisorID: 42, StartDate: monday, EndDate: monday})
	assert.ErrorIs(t, err, ErrAdvisorNotFound)
}

func TestExecute_InvalidTimezone(t *testing.T) {
	advisor := utcAdvisor()
	advisor.Timezone = "Mars/Olympus"

	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: advisor},
		&fakeAvailabilityRepo{},
		&fakeAppointmentRepo{},
	)

	_, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday})
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(
		&fakeAdvisorRepo{advisor: utcAdvisor()},
		&fakeAvailabilityRepo{},
		&fakeAppointmentRepo{},
	)

	_, err := uc.Execute(context.Background(), &Request{AdvisorID: 0, StartDate: monday, EndDate: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidRange)

	// 62 дня включительно - предел, 63 - уже слишком широко
	_, err = uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday.AddDate(0, 0, domain.MaxQueryRangeDays-1)})
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{AdvisorID: 1, StartDate: monday, EndDate: monday.AddDate(0, 0, domain.MaxQueryRangeDays)})
	assert.ErrorIs(t, err, ErrRangeTooWide)
}
