package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	"github.com/finplanner/advisor-booking-service/pkg/dbmetrics"
	"github.com/finplanner/advisor-booking-service/pkg/psqlbuilder"
)

var windowColumns = []string{
	"id",
	"advisor_id",
	"day_of_week",
	"specific_date",
	"start_time",
	"end_time",
	"is_recurring",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с окнами доступности советников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно доступности
func (r *Repository) Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns(
			"advisor_id",
			"day_of_week",
			"specific_date",
			"start_time",
			"end_time",
			"is_recurring",
		).
		Values(
			window.AdvisorID,
			window.DayOfWeek,
			window.SpecificDate,
			window.StartTime,
			window.EndTime,
			window.Recurring,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// Delete удаляет окно доступности советника.
// advisorID входит в условие: советник не может удалить чужое окно.
func (r *Repository) Delete(ctx context.Context, advisorID, windowID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"id": windowID, "advisor_id": advisorID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// GetByAdvisor получает все окна доступности советника
func (r *Repository) GetByAdvisor(ctx context.Context, advisorID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"advisor_id": advisorID}).
		OrderBy("is_recurring DESC, day_of_week ASC, specific_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// GetByAdvisorForRange получает окна, действующие в диапазоне дат:
// все повторяющиеся плюс разовые с датой внутри [startDate, endDate]
func (r *Repository) GetByAdvisorForRange(ctx context.Context, advisorID int64, startDate, endDate time.Time) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"advisor_id": advisorID}).
		Where(squirrel.Or{
			squirrel.Eq{"is_recurring": true},
			squirrel.And{
				squirrel.GtOrEq{"specific_date": startDate},
				squirrel.LtOrEq{"specific_date": endDate},
			},
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisorForRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisorForRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

func (r *Repository) scanWindows(rows *sql.Rows) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0)

	for rows.Next() {
		var window domain.AvailabilityWindow
		var dayOfWeek sql.NullInt64
		var specificDate sql.NullTime
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.AdvisorID,
			&dayOfWeek,
			&specificDate,
			&window.StartTime,
			&window.EndTime,
			&window.Recurring,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}

		window.DayOfWeek = int(dayOfWeek.Int64)
		if specificDate.Valid {
			d := specificDate.Time
			window.SpecificDate = &d
		}
		window.CreatedAt = createdAt.Time
		window.UpdatedAt = updatedAt.Time

		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
