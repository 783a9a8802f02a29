package provisioning

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

const queueKey = "provisioning:tasks"

func newTestQueue(t *testing.T) (*Queue, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewQueue(client, queueKey, time.Hour, 100*time.Millisecond, noopLogger{}), mr
}

func TestEnqueue_AndDequeue(t *testing.T) {
	q, mr := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, 1, 10))
	assert.True(t, mr.Exists(q.dedupKey(1)))

	task, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, int64(1), task.AppointmentID)
	assert.Equal(t, int64(10), task.UserID)
	assert.Equal(t, 1, task.Attempt)
	assert.NotEmpty(t, task.TaskID)
}

func TestEnqueue_DuplicateIsNoOp(t *testing.T) {
	q, mr := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, 1, 10))
	require.NoError(t, q.Enqueue(ctx, 1, 10))

	items, err := mr.List(queueKey)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// После Release постановка снова проходит
	require.NoError(t, q.Release(ctx, 1))
	require.NoError(t, q.Enqueue(ctx, 1, 10))

	items, err = mr.List(queueKey)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestEnqueue_PushFailureReleasesDedup(t *testing.T) {
	q, mr := newTestQueue(t)
	ctx := context.Background()

	// Ключ очереди занят значением другого типа - LPUSH упадёт с WRONGTYPE
	require.NoError(t, mr.Set(queueKey, "blocker"))

	err := q.Enqueue(ctx, 1, 10)
	require.ErrorIs(t, err, ErrEnqueue)

	// Дедуп-ключ снят: повторная постановка не схлопнется в no-op
	assert.False(t, mr.Exists(q.dedupKey(1)))

	mr.Del(queueKey)
	require.NoError(t, q.Enqueue(ctx, 1, 10))

	items, err := mr.List(queueKey)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRequeue_IncrementsAttempt(t *testing.T) {
	q, mr := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, 1, 10))

	task, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, task)

	require.NoError(t, q.Requeue(ctx, task))
	// Задача всё ещё в работе, дедуп-ключ остаётся
	assert.True(t, mr.Exists(q.dedupKey(1)))

	retry, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, retry)
	assert.Equal(t, 2, retry.Attempt)
	assert.Equal(t, task.TaskID, retry.TaskID)
}

func TestDequeue_EmptyQueue(t *testing.T) {
	q, _ := newTestQueue(t)

	task, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Nil(t, task)
}
