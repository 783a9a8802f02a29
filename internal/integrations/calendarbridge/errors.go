package calendarbridge

import "errors"

var (
	// ErrNotAuthorized возвращается, когда пользователь не авторизовал доступ к календарю.
	// Выдача ссылки откладывается до завершения OAuth-авторизации.
	ErrNotAuthorized = errors.New("calendarbridge client: user has not authorized calendar access")

	// ErrProvider возвращается при временных сбоях провайдера календаря.
	// Операцию имеет смысл повторить позже.
	ErrProvider = errors.New("calendarbridge client: provider error")

	// ErrUnrecoverable возвращается, когда запрос отвергнут провайдером окончательно.
	// Повторять операцию бессмысленно.
	ErrUnrecoverable = errors.New("calendarbridge client: unrecoverable error")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarbridge client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("calendarbridge client: invalid response")
)
