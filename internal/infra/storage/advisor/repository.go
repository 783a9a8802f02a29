package advisor

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	"github.com/finplanner/advisor-booking-service/pkg/dbmetrics"
	"github.com/finplanner/advisor-booking-service/pkg/psqlbuilder"
)

var advisorColumns = []string{
	"id",
	"user_id",
	"display_name",
	"email",
	"timezone",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения профилей советников.
// Управление профилем живёт в сервисе идентичности; здесь нужны только
// существование советника, его таймзона и привязка к пользователю.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория советников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает советника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Advisor, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserID получает советника по ID пользователя.
// Используется для проверки роли: вызывающий является советником,
// если на его user_id заведён профиль советника.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Advisor, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Advisor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(advisorColumns...).
		From("advisors").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var adv domain.Advisor
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&adv.ID,
		&adv.UserID,
		&adv.DisplayName,
		&adv.Email,
		&adv.Timezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAdvisorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan advisor: %v", ErrScanRow, err)
	}

	adv.CreatedAt = createdAt.Time
	adv.UpdatedAt = updatedAt.Time

	return &adv, nil
}
