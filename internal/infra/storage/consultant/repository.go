package consultant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/dbmetrics"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/psqlbuilder"
)

// Repository репозиторий консультантов. Управление профилями - внешняя
// ответственность, ядро только читает.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория консультантов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает консультанта по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Consultant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "active", "created_at").
		From("consultants").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Consultant
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Active,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConsultantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan consultant: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time

	return &c, nil
}
