package provisioning

import "errors"

var (
	// ErrEnqueue возвращается при ошибке постановки задачи в очередь
	ErrEnqueue = errors.New("provisioning.queue: failed to enqueue task")

	// ErrDequeue возвращается при ошибке чтения задачи из очереди
	ErrDequeue = errors.New("provisioning.queue: failed to dequeue task")

	// ErrDecode возвращается при ошибке декодирования задачи
	ErrDecode = errors.New("provisioning.queue: failed to decode task")
)
