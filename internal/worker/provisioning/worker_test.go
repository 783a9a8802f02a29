package provisioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	queue "github.com/finplanner/advisor-booking-service/internal/infra/queue/provisioning"
	storageAppointment "github.com/finplanner/advisor-booking-service/internal/infra/storage/appointment"
	"github.com/finplanner/advisor-booking-service/internal/integrations/calendarbridge"
	"github.com/finplanner/advisor-booking-service/pkg/ptr"
)

// Фейки зависимостей

type fakeTaskQueue struct {
	requeued []*queue.Task
	released []int64
}

func (f *fakeTaskQueue) Dequeue(ctx context.Context) (*queue.Task, error) {
	return nil, nil
}

func (f *fakeTaskQueue) Requeue(ctx context.Context, task *queue.Task) error {
	retry := *task
	retry.Attempt++
	f.requeued = append(f.requeued, &retry)
	return nil
}

func (f *fakeTaskQueue) Release(ctx context.Context, appointmentID int64) error {
	f.released = append(f.released, appointmentID)
	return nil
}

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	getErr      error
	setLinkErr  error
	savedLink   string
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) SetMeetingLink(ctx context.Context, id int64, link string) error {
	if f.setLinkErr != nil {
		return f.setLinkErr
	}
	f.savedLink = link
	return nil
}

type fakeCalendar struct {
	authorized bool
	authErr    error
	event      *calendarbridge.CreateEventResponse
	eventErr   error
	created    int
}

func (f *fakeCalendar) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	return f.authorized, f.authErr
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, appointment *domain.Appointment) (*calendarbridge.CreateEventResponse, error) {
	f.created++
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	return f.event, nil
}

type fakeNotifier struct {
	sent int
	err  error
}

func (f *fakeNotifier) SendMeetingLink(ctx context.Context, appointment *domain.Appointment) error {
	if f.err != nil {
		return f.err
	}
	f.sent++
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Сборка тестового окружения

var testNow = time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)

const maxAttempts = 3

func activeAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              7,
		UserID:          10,
		AdvisorID:       1,
		AppointmentDate: testNow.Add(2 * time.Hour),
		DurationMinutes: 30,
		SessionType:     domain.SessionStandard,
		Status:          domain.StatusConfirmed,
	}
}

func newTask(attempt int) *queue.Task {
	return &queue.Task{
		TaskID:        "task-1",
		AppointmentID: 7,
		UserID:        10,
		Attempt:       attempt,
		EnqueuedAt:    testNow,
	}
}

type testEnv struct {
	worker   *Worker
	queue    *fakeTaskQueue
	repo     *fakeAppointmentRepo
	calendar *fakeCalendar
	notifier *fakeNotifier
}

func newTestEnv() *testEnv {
	q := &fakeTaskQueue{}
	repo := &fakeAppointmentRepo{appointment: activeAppointment()}
	calendar := &fakeCalendar{
		authorized: true,
		event: &calendarbridge.CreateEventResponse{
			EventID:     "evt-1",
			MeetingLink: "https://meet.example.com/abc",
		},
	}
	notifier := &fakeNotifier{}

	w := NewWorker(q, repo, calendar, notifier, nil, maxAttempts, noopLogger{})
	w.timeProvider = &fixedTimeProvider{now: testNow}

	return &testEnv{worker: w, queue: q, repo: repo, calendar: calendar, notifier: notifier}
}

// Тесты

func TestProcess_Success(t *testing.T) {
	env := newTestEnv()

	env.worker.process(context.Background(), newTask(1))

	assert.Equal(t, "https://meet.example.com/abc", env.repo.savedLink)
	assert.Equal(t, 1, env.notifier.sent)
	assert.Equal(t, []int64{7}, env.queue.released)
	assert.Empty(t, env.queue.requeued)
}

func TestProcess_DeferredWhenNotAuthorized(t *testing.T) {
	env := newTestEnv()
	env.calendar.authorized = false

	// Без OAuth-авторизации задача снимается: её вернут после авторизации
	env.worker.process(context.Background(), newTask(1))

	assert.Equal(t, 0, env.calendar.created)
	assert.Empty(t, env.repo.savedLink)
	assert.Equal(t, []int64{7}, env.queue.released)
	assert.Empty(t, env.queue.requeued)
}

func TestProcess_DeferredWhenAuthorizationLost(t *testing.T) {
	env := newTestEnv()
	env.calendar.eventErr = calendarbridge.ErrNotAuthorized

	env.worker.process(context.Background(), newTask(1))

	assert.Equal(t, []int64{7}, env.queue.released)
	assert.Empty(t, env.queue.requeued)
}

func TestProcess_TransientErrorRetried(t *testing.T) {
	env := newTestEnv()
	env.calendar.eventErr = calendarbridge.ErrProvider

	env.worker.process(context.Background(), newTask(1))

	// Задача вернулась в очередь, дедуп-ключ не снят
	require.Len(t, env.queue.requeued, 1)
	assert.Empty(t, env.queue.released)
}

func TestProcess_AttemptsExhausted(t *testing.T) {
	env := newTestEnv()
	env.calendar.eventErr = calendarbridge.ErrProvider

	env.worker.process(context.Background(), newTask(maxAttempts))

	assert.Empty(t, env.queue.requeued)
	assert.Equal(t, []int64{7}, env.queue.released)
}

func TestProcess_UnrecoverableError(t *testing.T) {
	env := newTestEnv()
	env.calendar.eventErr = calendarbridge.ErrUnrecoverable

	env.worker.process(context.Background(), newTask(1))

	assert.Empty(t, env.queue.requeued)
	assert.Equal(t, []int64{7}, env.queue.released)
}

func TestProcess_SkippedWhenLinkExists(t *testing.T) {
	env := newTestEnv()
	env.repo.appointment.MeetingLink = ptr.Ptr("https://meet.example.com/existing")

	env.worker.process(context.Background(), newTask(1))

	assert.Equal(t, 0, env.calendar.created)
	assert.Equal(t, []int64{7}, env.queue.released)
}

func TestProcess_SkippedWhenCancelled(t *testing.T) {
	env := newTestEnv()
	env.repo.appointment.Status = domain.StatusCancelled

	env.worker.process(context.Background(), newTask(1))

	assert.Equal(t, 0, env.calendar.created)
	assert.Equal(t, []int64{7}, env.queue.released)
}

func TestProcess_SkippedWhenFinished(t *testing.T) {
	env := newTestEnv()
	env.repo.appointment.AppointmentDate = testNow.Add(-time.Hour)

	env.worker.process(context.Background(), newTask(1))

	assert.Equal(t, 0, env.calendar.created)
	assert.Equal(t, []int64{7}, env.queue.released)
}

func TestProcess_AppointmentNotFound(t *testing.T) {
	env := newTestEnv()
	env.repo.getErr = storageAppointment.ErrAppointmentNotFound

	env.worker.process(context.Background(), newTask(1))

	assert.Empty(t, env.queue.requeued)
	assert.Equal(t, []int64{7}, env.queue.released)
}

func TestProcess_ConcurrentLinkWrite(t *testing.T) {
	env := newTestEnv()
	env.repo.setLinkErr = storageAppointment.ErrLinkAlreadySet

	// Другой воркер уже записал ссылку - задача снимается без уведомления
	env.worker.process(context.Background(), newTask(1))

	assert.Equal(t, 0, env.notifier.sent)
	assert.Equal(t, []int64{7}, env.queue.released)
	assert.Empty(t, env.queue.requeued)
}

func TestProcess_RepositoryErrorRetried(t *testing.T) {
	env := newTestEnv()
	env.repo.getErr = errors.New("connection refused")

	env.worker.process(context.Background(), newTask(1))

	require.Len(t, env.queue.requeued, 1)
	assert.Equal(t, 2, env.queue.requeued[0].Attempt)
	assert.Empty(t, env.queue.released)
}
