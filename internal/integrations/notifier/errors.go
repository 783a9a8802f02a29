package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrSendFailed возвращается, когда сервис уведомлений не принял сообщение.
	// Уведомления не критичны: вызывающий код логирует ошибку и продолжает.
	ErrSendFailed = errors.New("notifier client: failed to send notification")
)
