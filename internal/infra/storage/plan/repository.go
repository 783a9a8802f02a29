package plan

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	"github.com/finplanner/advisor-booking-service/pkg/dbmetrics"
	"github.com/finplanner/advisor-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий ссылок на финансовые планы.
// Содержимое плана принадлежит другому сервису; при бронировании нужны
// только существование плана и его владелец.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория планов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ссылку на план по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PlanRef, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"plan_name",
		"created_at",
	).
		From("financial_plans").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var ref domain.PlanRef
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ref.ID,
		&ref.UserID,
		&ref.PlanName,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan plan: %v", ErrScanRow, err)
	}

	ref.CreatedAt = createdAt.Time

	return &ref, nil
}
