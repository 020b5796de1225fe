package get_day_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings/models"
)

type BookingsService interface {
	GetDayBookings(ctx context.Context, date time.Time) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
