package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	storageAvailability "github.com/finplanner/advisor-booking-service/internal/infra/storage/availability"
	"github.com/finplanner/advisor-booking-service/internal/service/availability/models"
	"github.com/finplanner/advisor-booking-service/pkg/ptr"
)

// Фейки зависимостей

type fakeAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
	nextID  int64
}

func (f *fakeAvailabilityRepo) Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	f.nextID++
	created := *window
	created.ID = f.nextID
	f.windows = append(f.windows, &created)
	return &created, nil
}

func (f *fakeAvailabilityRepo) Delete(ctx context.Context, advisorID, windowID int64) error {
	for i, w := range f.windows {
		if w.ID == windowID && w.AdvisorID == advisorID {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			return nil
		}
	}
	return storageAvailability.ErrWindowNotFound
}

func (f *fakeAvailabilityRepo) GetByAdvisor(ctx context.Context, advisorID int64) ([]*domain.AvailabilityWindow, error) {
	var result []*domain.AvailabilityWindow
	for _, w := range f.windows {
		if w.AdvisorID == advisorID {
			result = append(result, w)
		}
	}
	return result, nil
}

type fakeAdvisorRepo struct {
	advisor *domain.Advisor
}

func (f *fakeAdvisorRepo) GetByID(ctx context.Context, advisorID int64) (*domain.Advisor, error) {
	return f.advisor, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

const advisorUserID = int64(100)

func newTestService() (*Service, *fakeAvailabilityRepo) {
	repo := &fakeAvailabilityRepo{}
	svc := NewService(
		repo,
		&fakeAdvisorRepo{advisor: &domain.Advisor{ID: 1, UserID: advisorUserID, Timezone: "UTC"}},
		noopLogger{},
	)
	return svc, repo
}

// Тесты

func TestAddWindow_Recurring(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.AddWindow(context.Background(), &models.AddWindowRequest{
		UserID:    advisorUserID,
		AdvisorID: 1,
		Recurring: true,
		DayOfWeek: ptr.Ptr(1),
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	require.NoError(t, err)

	assert.True(t, resp.Recurring)
	require.NotNil(t, resp.DayOfWeek)
	assert.Equal(t, 1, *resp.DayOfWeek)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Len(t, repo.windows, 1)
}

func TestAddWindow_OneOff(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.AddWindow(context.Background(), &models.AddWindowRequest{
		UserID:       advisorUserID,
		AdvisorID:    1,
		Recurring:    false,
		SpecificDate: ptr.Ptr("2026-03-18"),
		StartTime:    "10:00",
		EndTime:      "12:00",
	})
	require.NoError(t, err)

	assert.False(t, resp.Recurring)
	require.NotNil(t, resp.SpecificDate)
	assert.Equal(t, "2026-03-18", *resp.SpecificDate)
}

func TestAddWindow_AccessDenied(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddWindow(context.Background(), &models.AddWindowRequest{
		UserID:    999,
		AdvisorID: 1,
		Recurring: true,
		DayOfWeek: ptr.Ptr(1),
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAddWindow_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name    string
		req     *models.AddWindowRequest
		wantErr error
	}{
		{
			"invalid start time",
			&models.AddWindowRequest{UserID: advisorUserID, AdvisorID: 1, Recurring: true, DayOfWeek: ptr.Ptr(1), StartTime: "9am", EndTime: "17:00"},
			ErrInvalidInput,
		},
		{
			"start not before end",
			&models.AddWindowRequest{UserID: advisorUserID, AdvisorID: 1, Recurring: true, DayOfWeek: ptr.Ptr(1), StartTime: "17:00", EndTime: "09:00"},
			ErrInvalidWindow,
		},
		{
			"empty window",
			&models.AddWindowRequest{UserID: advisorUserID, AdvisorID: 1, Recurring: true, DayOfWeek: ptr.Ptr(1), StartTime: "09:00", EndTime: "09:00"},
			ErrInvalidWindow,
		},
		{
			"recurring without day of week",
			&models.AddWindowRequest{UserID: advisorUserID, AdvisorID: 1, Recurring: true, StartTime: "09:00", EndTime: "17:00"},
			ErrInvalidWindow,
		},
		{
			"day of week out of range",
			&models.AddWindowRequest{UserID: advisorUserID, AdvisorID: 1, Recurring: true, DayOfWeek: ptr.Ptr(8), StartTime: "09:00", EndTime: "17:00"},
			ErrInvalidWindow,
		},
		{
			"one-off without date",
			&models.AddWindowRequest{UserID: advisorUserID, AdvisorID: 1, Recurring: false, StartTime: "09:00", EndTime: "17:00"},
			ErrInvalidWindow,
		},
		{
			"one-off with bad date",
			&models.AddWindowRequest{UserID: advisorUserID, AdvisorID: 1, Recurring: false, SpecificDate: ptr.Ptr("18.03.2026"), StartTime: "09:00", EndTime: "17:00"},
			ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddWindow(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemoveWindow(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.AddWindow(context.Background(), &models.AddWindowRequest{
		UserID:    advisorUserID,
		AdvisorID: 1,
		Recurring: true,
		DayOfWeek: ptr.Ptr(3),
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)

	err = svc.RemoveWindow(context.Background(), &models.RemoveWindowRequest{
		UserID:    advisorUserID,
		AdvisorID: 1,
		WindowID:  created.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, repo.windows)

	// Повторное удаление - окно уже не существует
	err = svc.RemoveWindow(context.Background(), &models.RemoveWindowRequest{
		UserID:    advisorUserID,
		AdvisorID: 1,
		WindowID:  created.ID,
	})
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestListWindows(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddWindow(context.Background(), &models.AddWindowRequest{
		UserID:    advisorUserID,
		AdvisorID: 1,
		Recurring: true,
		DayOfWeek: ptr.Ptr(1),
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)

	resp, err := svc.ListWindows(context.Background(), &models.ListWindowsRequest{
		UserID:    advisorUserID,
		AdvisorID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Windows, 1)

	_, err = svc.ListWindows(context.Background(), &models.ListWindowsRequest{
		UserID:    999,
		AdvisorID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
