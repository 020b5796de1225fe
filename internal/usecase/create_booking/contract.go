package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CreateSeries(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория настроек календаря
type ScheduleRepository interface {
	GetConfig(ctx context.Context) (*domain.CalendarConfig, error)
	GetLunchOverride(ctx context.Context, date time.Time) (*domain.LunchOverride, error)
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
}

// ActivityLog интерфейс журнала действий
type ActivityLog interface {
	Log(ctx context.Context, actor, action, details string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
