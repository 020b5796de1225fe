package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
)

// ScheduleRepository интерфейс репозитория настроек календаря
type ScheduleRepository interface {
	GetConfig(ctx context.Context) (*domain.CalendarConfig, error)
	SaveConfig(ctx context.Context, config *domain.CalendarConfig) error
	GetLunchOverride(ctx context.Context, date time.Time) (*domain.LunchOverride, error)
	SaveLunchOverride(ctx context.Context, override *domain.LunchOverride) error
	DeleteLunchOverride(ctx context.Context, date time.Time) error
	ListBlockedDates(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error)
	AddBlockedDate(ctx context.Context, blocked *domain.BlockedDate) error
	RemoveBlockedDate(ctx context.Context, date time.Time) error
}

// ActivityLog интерфейс журнала действий
type ActivityLog interface {
	Log(ctx context.Context, actor, action, details string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
