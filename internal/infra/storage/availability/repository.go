package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/dbmetrics"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/psqlbuilder"
)

var windowColumns = []string{
	"id",
	"consultant_id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с окнами доступности консультантов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByConsultantAndWeekday получает окно доступности консультанта на день недели.
// На (consultant, dayOfWeek) существует не более одного окна.
func (r *Repository) GetByConsultantAndWeekday(ctx context.Context, consultantID int64, dayOfWeek int) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultantAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	window, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultantAndWeekday - scan window: %v", ErrScanRow, err)
	}

	return window, nil
}

// GetAllByConsultant получает все окна доступности консультанта, упорядоченные
// по дню недели
func (r *Repository) GetAllByConsultant(ctx context.Context, consultantID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByConsultant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByConsultant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByConsultant - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByConsultant - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// Upsert создает или заменяет окно доступности на (consultant, dayOfWeek).
// Инвариант "одно окно на день недели" держит ограничение
// ux_availability_consultant_day.
func (r *Repository) Upsert(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns("consultant_id", "day_of_week", "start_time", "end_time").
		Values(window.ConsultantID, window.DayOfWeek, window.StartTime, window.EndTime).
		Suffix(`ON CONFLICT ON CONSTRAINT ux_availability_consultant_day
			DO UPDATE SET start_time = EXCLUDED.start_time,
			              end_time = EXCLUDED.end_time,
			              updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&window.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// DeleteByConsultantAndWeekday удаляет окно доступности на день недели
// (консультант в этот день недоступен)
func (r *Repository) DeleteByConsultantAndWeekday(ctx context.Context, consultantID int64, dayOfWeek int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByConsultantAndWeekday - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByConsultantAndWeekday - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.AvailabilityWindow, error) {
	var window domain.AvailabilityWindow
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&window.ID,
		&window.ConsultantID,
		&window.DayOfWeek,
		&window.StartTime,
		&window.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}
