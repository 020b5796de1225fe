package activity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RidingSchoolService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("activity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("activity.repository: failed to execute query")
)

// Repository журнал действий (append-only): кто, что и когда сделал
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр журнала действий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Log записывает действие в журнал
func (r *Repository) Log(ctx context.Context, actor, action, details string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("activity_log").
		Columns("actor", "action", "details").
		Values(actor, action, details).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Log - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Log - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
