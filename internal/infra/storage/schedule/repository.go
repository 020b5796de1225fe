package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек календаря, переопределений обеда и заблокированных дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Настройки календаря хранятся одной строкой с фиксированным id
const calendarConfigID = 1

// GetConfig получает текущие настройки календаря
func (r *Repository) GetConfig(ctx context.Context) (*domain.CalendarConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"work_start",
		"work_end",
		"lunch_start",
		"lunch_duration_minutes",
		"buffer_minutes",
		"repeat_horizon_weeks",
		"allow_admin_override_conflict",
		"updated_at",
	).
		From("calendar_config").
		Where(squirrel.Eq{"id": calendarConfigID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.CalendarConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.WorkWindow.Start,
		&config.WorkWindow.End,
		&config.LunchStart,
		&config.LunchDurationMinutes,
		&config.BufferMinutes,
		&config.RepeatHorizonWeeks,
		&config.AllowAdminOverrideConflict,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - scan config: %v", ErrScanRow, err)
	}

	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// SaveConfig сохраняет настройки календаря (insert или update единственной строки)
func (r *Repository) SaveConfig(ctx context.Context, config *domain.CalendarConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_config").
		Columns(
			"id",
			"work_start",
			"work_end",
			"lunch_start",
			"lunch_duration_minutes",
			"buffer_minutes",
			"repeat_horizon_weeks",
			"allow_admin_override_conflict",
		).
		Values(
			calendarConfigID,
			config.WorkWindow.Start,
			config.WorkWindow.End,
			config.LunchStart,
			config.LunchDurationMinutes,
			config.BufferMinutes,
			config.RepeatHorizonWeeks,
			config.AllowAdminOverrideConflict,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			lunch_start = EXCLUDED.lunch_start,
			lunch_duration_minutes = EXCLUDED.lunch_duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			repeat_horizon_weeks = EXCLUDED.repeat_horizon_weeks,
			allow_admin_override_conflict = EXCLUDED.allow_admin_override_conflict,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveConfig - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveConfig - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetLunchOverride получает переопределение обеда на дату
func (r *Repository) GetLunchOverride(ctx context.Context, date time.Time) (*domain.LunchOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"override_date",
		"lunch_start",
		"lunch_duration_minutes",
	).
		From("lunch_overrides").
		Where(squirrel.Eq{"override_date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLunchOverride - build select query: %v", ErrBuildQuery, err)
	}

	var override domain.LunchOverride
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.Date,
		&override.LunchStart,
		&override.LunchDurationMinutes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLunchOverride - scan override: %v", ErrScanRow, err)
	}

	return &override, nil
}

// SaveLunchOverride сохраняет переопределение обеда на дату
func (r *Repository) SaveLunchOverride(ctx context.Context, override *domain.LunchOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("lunch_overrides").
		Columns("override_date", "lunch_start", "lunch_duration_minutes").
		Values(dateOnly(override.Date), override.LunchStart, override.LunchDurationMinutes).
		Suffix(`ON CONFLICT (override_date) DO UPDATE SET
			lunch_start = EXCLUDED.lunch_start,
			lunch_duration_minutes = EXCLUDED.lunch_duration_minutes`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveLunchOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveLunchOverride - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteLunchOverride удаляет переопределение обеда на дату
func (r *Repository) DeleteLunchOverride(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("lunch_overrides").
		Where(squirrel.Eq{"override_date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteLunchOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteLunchOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteLunchOverride - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// IsDateBlocked проверяет, заблокирована ли дата для бронирований
func (r *Repository) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("blocked_dates").
		Where(squirrel.Eq{"blocked_date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ListBlockedDates получает заблокированные даты за период
func (r *Repository) ListBlockedDates(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("blocked_date", "reason").
		From("blocked_dates").
		Where(squirrel.GtOrEq{"blocked_date": dateOnly(from)}).
		Where(squirrel.LtOrEq{"blocked_date": dateOnly(to)}).
		OrderBy("blocked_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocked := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var bd domain.BlockedDate
		if err := rows.Scan(&bd.Date, &bd.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %v", ErrScanRow, err)
		}
		blocked = append(blocked, &bd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return blocked, nil
}

// AddBlockedDate блокирует дату для бронирований
func (r *Repository) AddBlockedDate(ctx context.Context, blocked *domain.BlockedDate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("blocked_date", "reason").
		Values(dateOnly(blocked.Date), blocked.Reason).
		Suffix("ON CONFLICT (blocked_date) DO UPDATE SET reason = EXCLUDED.reason").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddBlockedDate - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddBlockedDate - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveBlockedDate снимает блокировку с даты
func (r *Repository) RemoveBlockedDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"blocked_date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
