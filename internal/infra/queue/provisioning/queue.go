package provisioning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Queue очередь задач provisioning поверх Redis-списка.
// Дедупликация по записи: пока задача в очереди или в работе, ключ
// dedup:<appointmentID> не даёт поставить дубликат.
type Queue struct {
	client       *redis.Client
	key          string
	dedupTTL     time.Duration
	dequeueBlock time.Duration
	logger       Logger
}

// NewQueue создает новую очередь задач
func NewQueue(client *redis.Client, key string, dedupTTL, dequeueBlock time.Duration, logger Logger) *Queue {
	return &Queue{
		client:       client,
		key:          key,
		dedupTTL:     dedupTTL,
		dequeueBlock: dequeueBlock,
		logger:       logger,
	}
}

// Enqueue ставит задачу на выдачу ссылки для записи.
// Повторная постановка, пока предыдущая задача не обработана, - no-op.
func (q *Queue) Enqueue(ctx context.Context, appointmentID, userID int64) error {
	ok, err := q.client.SetNX(ctx, q.dedupKey(appointmentID), "1", q.dedupTTL).Result()
	if err != nil {
		return fmt.Errorf("%w: set dedup key: %v", ErrEnqueue, err)
	}
	if !ok {
		q.logger.Info("Enqueue: task for appointment id=%d is already queued, skipping", appointmentID)
		return nil
	}

	task := &Task{
		TaskID:        uuid.NewString(),
		AppointmentID: appointmentID,
		UserID:        userID,
		Attempt:       1,
		EnqueuedAt:    time.Now().UTC(),
	}

	if err := q.push(ctx, task); err != nil {
		// Задача в очередь не попала - снимаем дедуп-ключ, иначе до истечения
		// TTL все повторные постановки будут молча схлопываться в no-op
		if delErr := q.client.Del(ctx, q.dedupKey(appointmentID)).Err(); delErr != nil {
			q.logger.Error("Enqueue: failed to release dedup key for appointment id=%d after push error: %v",
				appointmentID, delErr)
		}
		return err
	}

	q.logger.Info("Enqueue: queued provisioning task id=%s for appointment id=%d", task.TaskID, appointmentID)
	return nil
}

// Requeue возвращает задачу в очередь для повторной попытки.
// Дедуп-ключ при этом не трогаем: задача всё ещё "в работе".
func (q *Queue) Requeue(ctx context.Context, task *Task) error {
	retry := &Task{
		TaskID:        task.TaskID,
		AppointmentID: task.AppointmentID,
		UserID:        task.UserID,
		Attempt:       task.Attempt + 1,
		EnqueuedAt:    time.Now().UTC(),
	}

	if err := q.push(ctx, retry); err != nil {
		return err
	}

	q.logger.Info("Requeue: re-queued task id=%s for appointment id=%d, attempt=%d",
		retry.TaskID, retry.AppointmentID, retry.Attempt)
	return nil
}

// Dequeue блокирующе забирает следующую задачу из очереди.
// Возвращает (nil, nil), если за время ожидания задач не появилось.
func (q *Queue) Dequeue(ctx context.Context) (*Task, error) {
	values, err := q.client.BRPop(ctx, q.dequeueBlock, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: brpop: %v", ErrDequeue, err)
	}

	// BRPOP возвращает пару [key, value]
	if len(values) != 2 {
		return nil, fmt.Errorf("%w: unexpected brpop reply of length %d", ErrDequeue, len(values))
	}

	var task Task
	if err := json.Unmarshal([]byte(values[1]), &task); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &task, nil
}

// Release снимает дедуп-ключ записи: следующая постановка задачи снова пройдёт
func (q *Queue) Release(ctx context.Context, appointmentID int64) error {
	if err := q.client.Del(ctx, q.dedupKey(appointmentID)).Err(); err != nil {
		return fmt.Errorf("%w: del dedup key: %v", ErrEnqueue, err)
	}
	return nil
}

func (q *Queue) push(ctx context.Context, task *Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("%w: marshal task: %v", ErrEnqueue, err)
	}

	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("%w: lpush: %v", ErrEnqueue, err)
	}

	return nil
}

func (q *Queue) dedupKey(appointmentID int64) string {
	return fmt.Sprintf("%s:dedup:%d", q.key, appointmentID)
}
