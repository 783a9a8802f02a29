package create_booking

import (
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// Request модель запроса на создание записи на консультацию
type Request struct {
	UserID          int64              // ID пользователя
	AdvisorID       int64              // ID консультанта
	AppointmentDate time.Time          // Дата и время начала консультации (UTC)
	DurationMinutes int                // Длительность в минутах
	SessionType     domain.SessionType // Тип консультации
	SharedPlanID    *int64             // ID финансового плана, открытого консультанту (опционально)
	UserNotes       *string            // Заметки пользователя (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64     // ID созданной записи
	UserID          int64     // ID пользователя
	AdvisorID       int64     // ID консультанта
	AppointmentDate time.Time // Дата и время начала (UTC)
	DurationMinutes int       // Длительность в минутах
	SessionType     string    // Тип консультации
	Status          string    // Статус записи
	MeetingLink     *string   // Ссылка на встречу (появляется позже, после provisioning)
	SharedPlanID    *int64    // ID финансового плана
	UserNotes       *string   // Заметки пользователя

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// CheckResult результат проверки интервала на конфликты.
// Пустой список Conflicts означает, что интервал свободен.
type CheckResult struct {
	Available bool                  // Свободен ли запрошенный интервал
	Conflicts []*domain.Appointment // Активные записи, пересекающиеся с интервалом
}
