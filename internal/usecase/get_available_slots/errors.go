package get_available_slots

import "errors"

var (
	// ErrAdvisorNotFound возвращается, когда советник не найден
	ErrAdvisorNotFound = errors.New("get_available_slots: advisor not found")

	// ErrInvalidRange возвращается, когда конец диапазона раньше начала
	ErrInvalidRange = errors.New("get_available_slots: invalid date range")

	// ErrRangeTooWide возвращается, когда диапазон шире допустимого
	ErrRangeTooWide = errors.New("get_available_slots: date range is too wide")

	// ErrInvalidTimezone возвращается, когда таймзона советника не распознана
	ErrInvalidTimezone = errors.New("get_available_slots: invalid advisor timezone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
