package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStartTime(ctx context.Context, id int64, startTime string) error
	UpdateAssignments(ctx context.Context, id int64, horses []string, note *string) error
	Delete(ctx context.Context, id int64) error
	DeleteSeriesFrom(ctx context.Context, repeatGroupID string, cutoff time.Time) (int64, error)
	SeriesExists(ctx context.Context, repeatGroupID string) (bool, error)
}

// ScheduleRepository интерфейс репозитория настроек календаря
type ScheduleRepository interface {
	GetConfig(ctx context.Context) (*domain.CalendarConfig, error)
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
