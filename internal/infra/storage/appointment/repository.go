package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	"github.com/finplanner/advisor-booking-service/pkg/dbmetrics"
	"github.com/finplanner/advisor-booking-service/pkg/psqlbuilder"
)

// appointmentColumns полный список колонок таблицы appointments
var appointmentColumns = []string{
	"id",
	"user_id",
	"advisor_id",
	"appointment_date",
	"duration_minutes",
	"session_type",
	"status",
	"booking_date",
	"meeting_link",
	"shared_plan_id",
	"user_notes",
	"advisor_notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с консультациями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория консультаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую консультацию.
// Если в контексте передана активная транзакция, использует её - при создании
// бронирования проверка конфликтов и вставка обязаны выполняться в одной
// SERIALIZABLE транзакции.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"user_id",
			"advisor_id",
			"appointment_date",
			"duration_minutes",
			"session_type",
			"status",
			"booking_date",
			"shared_plan_id",
			"user_notes",
		).
		Values(
			appt.UserID,
			appt.AdvisorID,
			appt.AppointmentDate,
			appt.DurationMinutes,
			appt.SessionType,
			appt.Status,
			appt.BookingDate,
			appt.SharedPlanID,
			appt.UserNotes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает консультацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByUserID получает консультации пользователя, новые сначала
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("appointment_date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetByAdvisorWithFilter получает консультации советника с фильтрацией
// по периоду, статусу и активности.
//
// Для проверки конфликтов при бронировании: RangeStart/RangeEnd задают
// окно выборки, и внутри транзакции выборка выполняется с FOR UPDATE -
// конкурентная вставка в тот же диапазон блокируется до коммита.
func (r *Repository) GetByAdvisorWithFilter(ctx context.Context, filter domain.AdvisorAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"advisor_id": filter.AdvisorID})

	// Фильтрация по периоду: берём консультации, чей интервал касается
	// [RangeStart, RangeEnd] - начало раньше конца окна, конец позже начала окна
	if filter.RangeEnd != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"appointment_date": *filter.RangeEnd})
	}
	if filter.RangeStart != nil {
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("appointment_date + make_interval(mins => duration_minutes) > ?", *filter.RangeStart),
		)
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("appointment_date ASC")

	// Внутри транзакции с ограниченным периодом блокируем строки диапазона
	if dbmetrics.IsInTransaction(ctx) && filter.RangeStart != nil && filter.RangeEnd != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisorWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisorWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// UpdateStatus обновляет статус консультации
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Cancel отменяет консультацию с указанием причины.
// Обновляет только неотменённые строки, поэтому повторная отмена
// не перезаписывает причину и время первой.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// SetMeetingLink записывает ссылку на встречу.
// Обновляет только строки без ссылки: повторный вызов (ретрай воркера,
// дубликат задачи) возвращает ErrLinkAlreadySet, а не перезаписывает ссылку.
func (r *Repository) SetMeetingLink(ctx context.Context, id int64, link string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("meeting_link", link).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"meeting_link": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetMeetingLink - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetMeetingLink - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetMeetingLink - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо консультации нет, либо ссылка уже записана
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrLinkAlreadySet
	}

	return nil
}

// SetAdvisorNotes записывает заметки советника к консультации
func (r *Repository) SetAdvisorNotes(ctx context.Context, id int64, notes string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("advisor_notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAdvisorNotes - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAdvisorNotes - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAdvisorNotes - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.UserID,
		&appt.AdvisorID,
		&appt.AppointmentDate,
		&appt.DurationMinutes,
		&appt.SessionType,
		&appt.Status,
		&appt.BookingDate,
		&appt.MeetingLink,
		&appt.SharedPlanID,
		&appt.UserNotes,
		&appt.AdvisorNotes,
		&appt.CancellationReason,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time
	// Времена консультаций хранятся и сравниваются в UTC
	appt.AppointmentDate = appt.AppointmentDate.UTC()
	appt.BookingDate = appt.BookingDate.UTC()

	return &appt, nil
}

func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := r.scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
