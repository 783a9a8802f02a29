package create_booking

import "errors"

var (
	// ErrAdvisorNotFound возвращается, когда консультант не найден
	ErrAdvisorNotFound = errors.New("create_booking: advisor not found")

	// ErrPlanNotFound возвращается, когда указанный финансовый план не найден
	ErrPlanNotFound = errors.New("create_booking: shared plan not found")

	// ErrPlanNotOwned возвращается, когда финансовый план принадлежит другому пользователю
	ErrPlanNotOwned = errors.New("create_booking: shared plan belongs to another user")

	// ErrSlotUnavailable возвращается, когда запрошенный интервал пересекается с активной записью
	ErrSlotUnavailable = errors.New("create_booking: requested slot is not available")

	// ErrInvalidDate возвращается при дате записи в прошлом
	ErrInvalidDate = errors.New("create_booking: appointment date is in the past")

	// ErrInvalidDuration возвращается при недопустимой длительности консультации
	ErrInvalidDuration = errors.New("create_booking: invalid duration")

	// ErrInvalidSessionType возвращается при неизвестном типе консультации
	ErrInvalidSessionType = errors.New("create_booking: invalid session type")

	// ErrInvalidTimezone возвращается при некорректной таймзоне консультанта
	ErrInvalidTimezone = errors.New("create_booking: invalid advisor timezone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
