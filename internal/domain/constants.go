package domain

// Параметры слотов и бронирования
const (
	// SlotDurationMinutes фиксированная длина бронируемого слота
	SlotDurationMinutes = 30

	// MinDurationMinutes и MaxDurationMinutes допустимая длительность консультации
	MinDurationMinutes = 30
	MaxDurationMinutes = 240

	// MaxQueryRangeDays максимальная ширина диапазона запроса доступных слотов
	MaxQueryRangeDays = 62

	// ConflictSlackMinutes запас по времени при выборке потенциально
	// конфликтующих консультаций: любая консультация, касающаяся
	// запрошенного интервала, обязана попасть в выборку
	ConflictSlackMinutes = MaxDurationMinutes

	MaxNotesLength = 2000
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы консультаций, занимающих слот в календаре
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses статусы консультаций, не участвующих в проверке конфликтов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
