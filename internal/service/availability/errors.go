package availability

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("availability window not found")

	// ErrAdvisorNotFound возвращается, когда консультант не найден
	ErrAdvisorNotFound = errors.New("advisor not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidWindow возвращается при некорректном окне доступности
	ErrInvalidWindow = errors.New("invalid availability window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
