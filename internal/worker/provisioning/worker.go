package provisioning

import (
	"context"
	"errors"
	"time"

	queue "github.com/finplanner/advisor-booking-service/internal/infra/queue/provisioning"
	appointmentRepo "github.com/finplanner/advisor-booking-service/internal/infra/storage/appointment"
	"github.com/finplanner/advisor-booking-service/internal/integrations/calendarbridge"
	"github.com/finplanner/advisor-booking-service/pkg/metrics"
)

// Результаты обработки задач для метрик
const (
	resultSuccess   = "success"
	resultDeferred  = "deferred"
	resultRetried   = "retried"
	resultExhausted = "exhausted"
	resultFailed    = "failed"
	resultSkipped   = "skipped"
)

// Worker воркер выдачи ссылок на встречи.
// Забирает задачи из очереди, создаёт событие календаря и сохраняет ссылку.
// Любой сбой не трогает саму запись: бронь остаётся подтверждённой,
// ссылка появляется при следующей удачной попытке.
type Worker struct {
	queue           TaskQueue
	appointmentRepo AppointmentRepository
	calendar        CalendarClient
	notifier        NotifierClient
	metrics         *metrics.Metrics
	timeProvider    TimeProvider
	maxAttempts     int
	logger          Logger
}

// NewWorker создает новый экземпляр воркера
func NewWorker(
	taskQueue TaskQueue,
	appointmentRepo AppointmentRepository,
	calendar CalendarClient,
	notifier NotifierClient,
	m *metrics.Metrics,
	maxAttempts int,
	logger Logger,
) *Worker {
	return &Worker{
		queue:           taskQueue,
		appointmentRepo: appointmentRepo,
		calendar:        calendar,
		notifier:        notifier,
		metrics:         m,
		timeProvider:    &RealTimeProvider{},
		maxAttempts:     maxAttempts,
		logger:          logger,
	}
}

// Run обрабатывает задачи до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Run: provisioning worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Run: provisioning worker stopped")
			return
		default:
		}

		task, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error("Run: failed to dequeue task: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if task == nil {
			continue
		}

		w.process(ctx, task)
	}
}

// process обрабатывает одну задачу
func (w *Worker) process(ctx context.Context, task *queue.Task) {
	w.logger.Info("process: task id=%s, appointment id=%d, attempt=%d",
		task.TaskID, task.AppointmentID, task.Attempt)

	// 1. Получаем запись
	appointment, err := w.appointmentRepo.GetByID(ctx, task.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			w.logger.Warn("process: appointment id=%d not found, dropping task", task.AppointmentID)
			w.finish(ctx, task, resultFailed)
			return
		}
		w.logger.Error("process: failed to get appointment id=%d: %v", task.AppointmentID, err)
		w.retryOrGiveUp(ctx, task)
		return
	}

	// 2. Отменённой или прошедшей записи ссылка не нужна
	if !appointment.IsActive() || appointment.HasEnded(w.timeProvider.Now()) {
		w.logger.Info("process: appointment id=%d is inactive or finished, skipping", task.AppointmentID)
		w.finish(ctx, task, resultSkipped)
		return
	}

	// 3. Ссылка уже есть - задача-дубликат
	if appointment.HasMeetingLink() {
		w.logger.Info("process: appointment id=%d already has a meeting link, skipping", task.AppointmentID)
		w.finish(ctx, task, resultSkipped)
		return
	}

	// 4. Без OAuth-авторизации откладываем выдачу: задача вернётся
	// после завершения авторизации пользователем
	authorized, err := w.calendar.IsAuthorized(ctx, appointment.UserID)
	if err != nil {
		w.logger.Warn("process: failed to check authorization for user id=%d: %v", appointment.UserID, err)
		w.retryOrGiveUp(ctx, task)
		return
	}
	if !authorized {
		w.logger.Info("process: user id=%d has not authorized calendar access, deferring appointment id=%d",
			appointment.UserID, task.AppointmentID)
		w.finish(ctx, task, resultDeferred)
		return
	}

	// 5. Создаём событие со встречей
	event, err := w.calendar.CreateEvent(ctx, appointment)
	if err != nil {
		switch {
		case errors.Is(err, calendarbridge.ErrNotAuthorized):
			w.logger.Info("process: authorization lost for user id=%d, deferring appointment id=%d",
				appointment.UserID, task.AppointmentID)
			w.finish(ctx, task, resultDeferred)
		case errors.Is(err, calendarbridge.ErrUnrecoverable):
			w.logger.Error("process: unrecoverable provider error for appointment id=%d: %v", task.AppointmentID, err)
			w.finish(ctx, task, resultFailed)
		default:
			w.logger.Warn("process: provider error for appointment id=%d: %v", task.AppointmentID, err)
			w.retryOrGiveUp(ctx, task)
		}
		return
	}

	// 6. Сохраняем ссылку. ErrLinkAlreadySet - гонка с другим воркером,
	// ссылка уже на месте, уведомление отправил победитель.
	if err := w.appointmentRepo.SetMeetingLink(ctx, task.AppointmentID, event.MeetingLink); err != nil {
		if errors.Is(err, appointmentRepo.ErrLinkAlreadySet) {
			w.logger.Info("process: meeting link for appointment id=%d was set concurrently", task.AppointmentID)
			w.finish(ctx, task, resultSkipped)
			return
		}
		w.logger.Error("process: failed to save meeting link for appointment id=%d: %v", task.AppointmentID, err)
		w.retryOrGiveUp(ctx, task)
		return
	}

	// 7. Уведомляем пользователя. Сбой доставки ссылку не отменяет.
	appointment.MeetingLink = &event.MeetingLink
	if err := w.notifier.SendMeetingLink(ctx, appointment); err != nil {
		w.logger.Error("process: failed to send meeting link notification for appointment id=%d: %v",
			task.AppointmentID, err)
	}

	w.logger.Info("process: provisioned meeting link for appointment id=%d", task.AppointmentID)
	w.finish(ctx, task, resultSuccess)
}

// retryOrGiveUp возвращает задачу в очередь, пока не исчерпаны попытки
func (w *Worker) retryOrGiveUp(ctx context.Context, task *queue.Task) {
	if task.Attempt >= w.maxAttempts {
		w.logger.Error("retryOrGiveUp: task id=%s for appointment id=%d exhausted %d attempts",
			task.TaskID, task.AppointmentID, task.Attempt)
		w.finish(ctx, task, resultExhausted)
		return
	}

	if err := w.queue.Requeue(ctx, task); err != nil {
		w.logger.Error("retryOrGiveUp: failed to requeue task id=%s: %v", task.TaskID, err)
		w.finish(ctx, task, resultExhausted)
		return
	}

	w.observe(resultRetried)
}

// finish снимает дедуп-ключ и фиксирует результат в метриках
func (w *Worker) finish(ctx context.Context, task *queue.Task, result string) {
	if err := w.queue.Release(ctx, task.AppointmentID); err != nil {
		w.logger.Error("finish: failed to release dedup key for appointment id=%d: %v", task.AppointmentID, err)
	}
	w.observe(result)
}

func (w *Worker) observe(result string) {
	if w.metrics == nil {
		return
	}
	w.metrics.ProvisioningTasksTotal.WithLabelValues(result).Inc()
}
