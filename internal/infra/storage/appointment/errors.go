package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда консультация не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrLinkAlreadySet возвращается при попытке повторно записать ссылку на встречу
	ErrLinkAlreadySet = errors.New("appointment.repository: meeting link already set")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
